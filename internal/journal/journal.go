// Package journal holds the user's written practice: affirmations,
// routines, goals, traits, standards, reminders and vision board images.
package journal

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Limits on list sizes.
const (
	MaxAffirmations   = 100
	MaxTraits         = 10
	MaxReminders      = 10
	MaxImagesPerBoard = 10
)

var (
	ErrEmpty           = errors.New("text cannot be empty")
	ErrLimitReached    = errors.New("limit reached")
	ErrOutOfRange      = errors.New("no entry at that position")
	ErrUnknownCategory = errors.New("unknown vision board category")
	ErrUnknownGoal     = errors.New("unknown goal area")
	ErrUnknownRoutine  = errors.New("unknown routine")
	ErrNotFound        = errors.New("image not found")
)

// Goals are free-text goals per life area.
type Goals struct {
	Wealth           string `json:"wealth"`
	Business         string `json:"business"`
	HealthFitness    string `json:"healthFitness"`
	PersonalBehavior string `json:"personalBehavior"`
}

// VisionImage is a reference to an image on a vision board.
type VisionImage struct {
	ID      string `json:"id"`
	URI     string `json:"uri"`
	Label   string `json:"label,omitempty"`
	AddedAt int64  `json:"addedAt"` // unix milliseconds
}

// VisionBoards groups images by category.
type VisionBoards struct {
	RoleModels     []VisionImage `json:"roleModels"`
	Lifestyle      []VisionImage `json:"lifestyle"`
	BodyGoals      []VisionImage `json:"bodyGoals"`
	SuccessSymbols []VisionImage `json:"successSymbols"`
	Inspiration    []VisionImage `json:"inspiration"`
}

// Data is the whole journal document.
type Data struct {
	Affirmations   []string     `json:"affirmations"`
	MorningRoutine string       `json:"morningRoutine"`
	EveningRoutine string       `json:"eveningRoutine"`
	Goals          Goals        `json:"goals"`
	Traits         []string     `json:"traits"`
	Standards      []string     `json:"standards"`
	DailyReminders []string     `json:"dailyReminders"`
	VisionBoards   VisionBoards `json:"visionBoards"`
}

// Initial returns an empty journal with non-nil lists.
func Initial() Data {
	d := Data{}
	d.normalize()
	return d
}

func (d *Data) normalize() {
	for _, l := range []*[]string{&d.Affirmations, &d.Traits, &d.Standards, &d.DailyReminders} {
		if *l == nil {
			*l = []string{}
		}
	}
	for _, c := range Categories {
		b := d.board(c)
		if *b == nil {
			*b = []VisionImage{}
		}
	}
}

// Category names a vision board.
type Category string

const (
	RoleModels     Category = "roleModels"
	Lifestyle      Category = "lifestyle"
	BodyGoals      Category = "bodyGoals"
	SuccessSymbols Category = "successSymbols"
	Inspiration    Category = "inspiration"
)

// Categories lists vision board categories in display order.
var Categories = []Category{RoleModels, Lifestyle, BodyGoals, SuccessSymbols, Inspiration}

// Title returns the display name of the category.
func (c Category) Title() string {
	switch c {
	case RoleModels:
		return "Role Models"
	case Lifestyle:
		return "Lifestyle"
	case BodyGoals:
		return "Body Goals"
	case SuccessSymbols:
		return "Success Symbols"
	case Inspiration:
		return "Inspiration"
	}
	return string(c)
}

// ParseCategory accepts the stored name or a dashed form ("role-models").
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for _, c := range Categories {
		if strings.ToLower(string(c)) == norm {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (d *Data) board(c Category) *[]VisionImage {
	switch c {
	case RoleModels:
		return &d.VisionBoards.RoleModels
	case Lifestyle:
		return &d.VisionBoards.Lifestyle
	case BodyGoals:
		return &d.VisionBoards.BodyGoals
	case SuccessSymbols:
		return &d.VisionBoards.SuccessSymbols
	case Inspiration:
		return &d.VisionBoards.Inspiration
	}
	return nil
}

// Board returns the images in category c.
func (d *Data) Board(c Category) []VisionImage {
	if b := d.board(c); b != nil {
		return *b
	}
	return nil
}

func addText(list *[]string, text string, limit int, what string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmpty
	}
	if limit > 0 && len(*list) >= limit {
		return fmt.Errorf("%w: at most %d %s", ErrLimitReached, limit, what)
	}
	*list = append(*list, text)
	return nil
}

func removeAt(list *[]string, i int) (string, error) {
	if i < 0 || i >= len(*list) {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, i+1)
	}
	removed := (*list)[i]
	*list = append((*list)[:i:i], (*list)[i+1:]...)
	return removed, nil
}

// AddAffirmation appends an affirmation.
func (d *Data) AddAffirmation(text string) error {
	return addText(&d.Affirmations, text, MaxAffirmations, "affirmations")
}

// RemoveAffirmation removes the affirmation at zero-based index i.
func (d *Data) RemoveAffirmation(i int) (string, error) { return removeAt(&d.Affirmations, i) }

func (d *Data) AddTrait(text string) error {
	return addText(&d.Traits, text, MaxTraits, "traits")
}

func (d *Data) RemoveTrait(i int) (string, error) { return removeAt(&d.Traits, i) }

// AddStandard appends a personal standard. Standards are unbounded.
func (d *Data) AddStandard(text string) error {
	return addText(&d.Standards, text, 0, "standards")
}

func (d *Data) RemoveStandard(i int) (string, error) { return removeAt(&d.Standards, i) }

func (d *Data) AddReminder(text string) error {
	return addText(&d.DailyReminders, text, MaxReminders, "reminders")
}

func (d *Data) RemoveReminder(i int) (string, error) { return removeAt(&d.DailyReminders, i) }

// SetRoutine replaces the morning or evening routine text.
func (d *Data) SetRoutine(kind, text string) error {
	text = strings.TrimSpace(text)
	switch strings.ToLower(kind) {
	case "morning":
		d.MorningRoutine = text
	case "evening":
		d.EveningRoutine = text
	default:
		return fmt.Errorf("%w: %q (use morning or evening)", ErrUnknownRoutine, kind)
	}
	return nil
}

// GoalAreas lists the accepted goal area names.
var GoalAreas = []string{"wealth", "business", "health", "behavior"}

// SetGoal replaces the goal for an area.
func (d *Data) SetGoal(area, text string) error {
	text = strings.TrimSpace(text)
	switch strings.ToLower(area) {
	case "wealth":
		d.Goals.Wealth = text
	case "business":
		d.Goals.Business = text
	case "health", "healthfitness", "health-fitness":
		d.Goals.HealthFitness = text
	case "behavior", "personalbehavior", "personal-behavior":
		d.Goals.PersonalBehavior = text
	default:
		return fmt.Errorf("%w: %q (use %s)", ErrUnknownGoal, area, strings.Join(GoalAreas, ", "))
	}
	return nil
}

// AddVisionImage adds an image reference to a board and returns it.
func (d *Data) AddVisionImage(c Category, uri, label string, now time.Time) (VisionImage, error) {
	b := d.board(c)
	if b == nil {
		return VisionImage{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return VisionImage{}, ErrEmpty
	}
	if len(*b) >= MaxImagesPerBoard {
		return VisionImage{}, fmt.Errorf("%w: at most %d images in %s", ErrLimitReached, MaxImagesPerBoard, c.Title())
	}
	img := VisionImage{
		ID:      uuid.NewString(),
		URI:     uri,
		Label:   strings.TrimSpace(label),
		AddedAt: now.UnixMilli(),
	}
	*b = append(*b, img)
	return img, nil
}

// RemoveVisionImage removes the image with the given ID (or unique ID
// prefix) from whichever board holds it.
func (d *Data) RemoveVisionImage(id string) (VisionImage, error) {
	for _, c := range Categories {
		b := d.board(c)
		for i, img := range *b {
			if img.ID == id || (len(id) >= 8 && strings.HasPrefix(img.ID, id)) {
				*b = append((*b)[:i:i], (*b)[i+1:]...)
				return img, nil
			}
		}
	}
	return VisionImage{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// BoardImage is a vision image with its category.
type BoardImage struct {
	Category Category
	VisionImage
}

// AllVisionImages returns every image across boards in category order.
func (d *Data) AllVisionImages() []BoardImage {
	var out []BoardImage
	for _, c := range Categories {
		for _, img := range d.Board(c) {
			out = append(out, BoardImage{Category: c, VisionImage: img})
		}
	}
	return out
}

// RandomAffirmation picks one affirmation, or "" when there are none.
func (d *Data) RandomAffirmation(rng *rand.Rand) string {
	if len(d.Affirmations) == 0 {
		return ""
	}
	if rng == nil {
		return d.Affirmations[rand.IntN(len(d.Affirmations))]
	}
	return d.Affirmations[rng.IntN(len(d.Affirmations))]
}

// Clone returns a deep copy.
func (d Data) Clone() Data {
	out := d
	out.Affirmations = append([]string{}, d.Affirmations...)
	out.Traits = append([]string{}, d.Traits...)
	out.Standards = append([]string{}, d.Standards...)
	out.DailyReminders = append([]string{}, d.DailyReminders...)
	for _, c := range Categories {
		b := out.board(c)
		*b = append([]VisionImage{}, d.Board(c)...)
	}
	return out
}
