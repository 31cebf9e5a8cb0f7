// Package tips provides short hints that help users discover radiant's
// commands.
package tips

import "time"

var all = []string{
	"`radiant checkin` once a day keeps your streak alive.",
	"A check-in yesterday keeps your streak alive until midnight tonight.",
	"`radiant journal affirm add \"I am enough.\"` to add an affirmation.",
	"`radiant journal show` to read your whole journal, nicely formatted.",
	"`radiant journal goal set health \"Run a half marathon\"` to set a goal.",
	"`radiant journal routine set morning \"Stretch, water, journal\"` to describe your morning.",
	"`radiant journal trait add \"Patient\"` to describe who you're becoming.",
	"`radiant journal standard add \"Keep my word\"` to write down a standard.",
	"`radiant journal vision add lifestyle ~/pics/cabin.jpg` to pin an image to a vision board.",
	"`radiant dash` opens the dashboard; press c to check in.",
	"`radiant streak` shows your current and longest streak.",
	"`radiant remind` lists the reminders that are due right now.",
	"`radiant config set notifications.enabled true` turns on daily reminders.",
	"`radiant config set notifications.morning_time 06:30` moves the morning reminder.",
	"`radiant export --format html -o journal.html` makes a printable copy.",
	"`radiant export --encrypt` seals a backup with a passphrase.",
	"`radiant status --json` prints a compact summary for status bars.",
	"Milestones come at 5, 10, 30, 50, 100 and 365 days.",
	"`radiant config list` shows every setting you can change.",
	"`radiant reset --activity` starts your streak history over.",
}

// All returns all tips in the pool.
func All() []string {
	return all
}

// Daily returns a deterministic tip for the given day.
func Daily(t time.Time) string {
	return all[t.YearDay()%len(all)]
}
