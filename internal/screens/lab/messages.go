package lab

import "time"

// pulseTickMsg animates the hook banner.
type pulseTickMsg time.Time

// coachReadyMsg carries an asynchronously generated coach insight.
type coachReadyMsg struct {
	Phase string
	Text  string
	Err   error
}
