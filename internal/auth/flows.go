// Package auth orchestrates the login and signup flows: local
// validation, password hashing, the OTP verification gate and the
// session/token updates that follow a successful exchange.
package auth

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/chatterm/chatterm/internal/credential"
	"github.com/chatterm/chatterm/internal/logger"
	"github.com/chatterm/chatterm/internal/requester"
	"github.com/chatterm/chatterm/internal/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Flows sequences the user-facing authentication operations. Only Login
// and Logout mutate the token store; every other flow leaves session
// state untouched. One flow runs at a time: a second submission while
// one is pending gets ErrFlowInFlight instead of issuing a duplicate
// request.
type Flows struct {
	http     *requester.HTTPRequester
	session  *session.Session
	hasher   credential.Hasher
	inFlight atomic.Bool
}

type FlowsParams struct {
	fx.In

	Requester *requester.HTTPRequester
	Session   *session.Session
	Hasher    credential.Hasher
}

// NewFlows creates the flow orchestrator.
func NewFlows(params FlowsParams) *Flows {
	return &Flows{
		http:    params.Requester,
		session: params.Session,
		hasher:  params.Hasher,
	}
}

var _ session.ProfileFetcher = (*Flows)(nil)

func (f *Flows) begin() error {
	if !f.inFlight.CompareAndSwap(false, true) {
		return ErrFlowInFlight
	}
	return nil
}

func (f *Flows) end() {
	f.inFlight.Store(false)
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string              `json:"token"`
	Data  session.UserProfile `json:"data"`
}

// Login validates both fields, hashes the password and exchanges the
// credentials for a bearer token. On success the token is persisted and
// the session user updated; on any failure the token store is left
// untouched.
func (f *Flows) Login(ctx context.Context, identifier, password string) (session.UserProfile, error) {
	if err := f.begin(); err != nil {
		return session.UserProfile{}, err
	}
	defer f.end()

	if identifier == "" || password == "" {
		return session.UserProfile{}, &ValidationError{Message: "please enter both username and password"}
	}

	digest, err := f.hasher.Digest(password)
	if err != nil {
		return session.UserProfile{}, err
	}

	resp, err := f.http.Post(ctx, "/login", loginRequest{Name: identifier, Password: digest})
	if err != nil {
		return session.UserProfile{}, fmt.Errorf("login request: %w", err)
	}
	if !resp.OK() {
		return session.UserProfile{}, &AuthRejectedError{StatusCode: resp.StatusCode, Message: serverMessage(resp)}
	}

	var payload loginResponse
	if err := resp.DecodeJSON(&payload); err != nil {
		return session.UserProfile{}, fmt.Errorf("decoding login response: %w", err)
	}

	if err := f.session.Tokens().Store(payload.Token); err != nil {
		return session.UserProfile{}, fmt.Errorf("persisting token: %w", err)
	}
	f.session.SetUser(payload.Data)

	logger.Info("login succeeded", zap.String("user", payload.Data.Name))
	return payload.Data, nil
}

// CurrentUser issues the authenticated who-am-I query. It implements
// session.ProfileFetcher for the bootstrapper.
func (f *Flows) CurrentUser(ctx context.Context) (session.UserProfile, error) {
	resp, err := f.http.Get(ctx, "/users/me")
	if err != nil {
		return session.UserProfile{}, fmt.Errorf("current user request: %w", err)
	}
	if !resp.OK() {
		return session.UserProfile{}, &AuthRejectedError{StatusCode: resp.StatusCode}
	}

	var user session.UserProfile
	if err := resp.DecodeJSON(&user); err != nil {
		return session.UserProfile{}, fmt.Errorf("decoding user profile: %w", err)
	}
	return user, nil
}

// SignupForm carries the signup fields as entered; the phone number is
// already the country code + national number concatenation.
type SignupForm struct {
	Email           string
	Name            string
	Phone           string
	Password        string
	ConfirmPassword string
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Signup validates the form and the OTP gate, hashes the password and
// creates the account. The backend is not called unless the challenge
// is Verified. Success does not log the user in; the caller routes back
// to the login page.
func (f *Flows) Signup(ctx context.Context, form SignupForm, challenge *OTPChallenge) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()

	if form.Email == "" || form.Name == "" || form.Phone == "" || form.Password == "" || form.ConfirmPassword == "" {
		return &ValidationError{Message: "please fill in all fields"}
	}
	if form.Password != form.ConfirmPassword {
		return &ValidationError{Message: "passwords do not match"}
	}
	if challenge == nil || !challenge.Verified() {
		return &ValidationError{Message: "please verify your phone number first"}
	}

	digest, err := f.hasher.Digest(form.Password)
	if err != nil {
		return err
	}

	resp, err := f.http.Post(ctx, "/signup", signupRequest{
		Email:    form.Email,
		Name:     form.Name,
		Phone:    form.Phone,
		Password: digest,
	})
	if err != nil {
		return fmt.Errorf("signup request: %w", err)
	}
	if !resp.OK() {
		return &AuthRejectedError{StatusCode: resp.StatusCode, Message: serverMessage(resp)}
	}

	logger.Info("signup succeeded", zap.String("name", form.Name))
	return nil
}

type otpSendRequest struct {
	Phone string `json:"phone"`
}

type otpVerifyRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// SendOTP requests a verification code for the given number. The
// challenge only advances to Sent once the backend acknowledges the
// dispatch; on any failure it stays where it was.
func (f *Flows) SendOTP(ctx context.Context, challenge *OTPChallenge, phone string) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()

	if err := challenge.prepareSend(phone); err != nil {
		return err
	}

	resp, err := f.http.Post(ctx, "/send-otp", otpSendRequest{Phone: phone})
	if err != nil {
		return fmt.Errorf("sending verification code: %w", err)
	}
	if !resp.OK() {
		return &AuthRejectedError{StatusCode: resp.StatusCode, Message: serverMessage(resp)}
	}

	challenge.markSent(phone)
	return nil
}

// VerifyOTP submits a code for the challenge's pinned number. A backend
// rejection moves the challenge to Failed; a transport error leaves it
// unchanged so the same code can be retried.
func (f *Flows) VerifyOTP(ctx context.Context, challenge *OTPChallenge, code string) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()

	if err := challenge.prepareSubmit(code); err != nil {
		return err
	}

	resp, err := f.http.Post(ctx, "/verify-otp", otpVerifyRequest{Phone: challenge.Phone(), OTP: code})
	if err != nil {
		return fmt.Errorf("verifying code: %w", err)
	}
	if !resp.OK() {
		challenge.markFailed()
		return &AuthRejectedError{StatusCode: resp.StatusCode, Message: serverMessage(resp)}
	}

	challenge.markVerified()
	return nil
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword asks the backend to mail a reset link.
func (f *Flows) ForgotPassword(ctx context.Context, email string) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()

	if email == "" {
		return &ValidationError{Message: "please enter your email"}
	}

	resp, err := f.http.Post(ctx, "/auth/forgot-password", forgotPasswordRequest{Email: email})
	if err != nil {
		return fmt.Errorf("forgot password request: %w", err)
	}
	if !resp.OK() {
		return &AuthRejectedError{StatusCode: resp.StatusCode, Message: serverMessage(resp)}
	}
	return nil
}

// Logout clears the session user and the persisted token.
func (f *Flows) Logout() error {
	logger.Info("logging out")
	return f.session.Clear()
}

// serverMessage pulls the backend's error message out of a response
// body, if it sent one.
func serverMessage(resp *requester.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := resp.DecodeJSON(&body); err == nil {
		return body.Message
	}
	return ""
}
