package auth

import "sync"

// OTPState tracks phone-ownership proof during signup.
type OTPState int

const (
	OTPNotSent OTPState = iota
	OTPSent
	OTPVerified
	OTPFailed
)

func (s OTPState) String() string {
	switch s {
	case OTPNotSent:
		return "not_sent"
	case OTPSent:
		return "sent"
	case OTPVerified:
		return "verified"
	case OTPFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OTPChallenge is the per-signup-attempt verification state machine.
// Transitions only move forward: NotSent→Sent on an acknowledged
// dispatch, Sent→Verified on an accepted code, Sent→Failed on a
// rejected one. Failed accepts another code submission; Verified is
// terminal. The phone number is pinned once a code has been sent —
// requesting a code for a different number starts a fresh challenge.
// Transitions happen on flow goroutines while the UI reads the state on
// every render, so both fields are mutex-guarded.
type OTPChallenge struct {
	mu    sync.Mutex
	phone string
	state OTPState
}

// NewOTPChallenge creates a challenge in the NotSent state.
func NewOTPChallenge() *OTPChallenge {
	return &OTPChallenge{}
}

// State returns the current verification state.
func (c *OTPChallenge) State() OTPState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Phone returns the number the challenge is pinned to.
func (c *OTPChallenge) Phone() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phone
}

// Verified reports whether phone ownership has been proven.
func (c *OTPChallenge) Verified() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == OTPVerified
}

// prepareSend validates a code request and applies the phone-change
// reset before any network call is made.
func (c *OTPChallenge) prepareSend(phone string) error {
	if phone == "" {
		return &ValidationError{Message: "please enter your phone number"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != OTPNotSent && phone != c.phone {
		c.phone = ""
		c.state = OTPNotSent
	}
	if c.state == OTPVerified {
		return &ValidationError{Message: "this phone number is already verified"}
	}
	return nil
}

// markSent records an acknowledged dispatch and pins the phone number.
func (c *OTPChallenge) markSent(phone string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phone = phone
	c.state = OTPSent
}

// prepareSubmit guards a code submission: only Sent and Failed accept one.
func (c *OTPChallenge) prepareSubmit(code string) error {
	if code == "" {
		return &ValidationError{Message: "please enter the verification code"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case OTPSent, OTPFailed:
		return nil
	case OTPVerified:
		return &ValidationError{Message: "this phone number is already verified"}
	default:
		return &ValidationError{Message: "request a verification code first"}
	}
}

func (c *OTPChallenge) markVerified() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = OTPVerified
}

func (c *OTPChallenge) markFailed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = OTPFailed
}
