package models

import "time"

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a single dismissible notification shown to the user.
type Notice struct {
	Level   NoticeLevel
	Message string
}

func Success(msg string) Notice { return Notice{Level: NoticeSuccess, Message: msg} }
func Error(msg string) Notice   { return Notice{Level: NoticeError, Message: msg} }
func Info(msg string) Notice    { return Notice{Level: NoticeInfo, Message: msg} }

// Navigation asks the router to move to Path, optionally after a delay,
// carrying State to the next route.
type Navigation struct {
	Path  string
	State map[string]string
	After time.Duration
}

// Outcome is what a form submission produced: the notices to surface, an
// optional navigation, and whether the submission started a lockout.
type Outcome struct {
	Notices  []Notice
	Navigate *Navigation
	Lockout  bool
}
