package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/dreamias/internal/client/services"
	"github.com/dmitrijs2005/dreamias/internal/logging"
)

// stubInputs replaces the interactive helpers with canned answers. Text
// answers and passwords are consumed in order; each password is a fresh
// copy so wiping does not affect the next call.
func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origGP, origGY := getSimpleText, getPassword, getYear
	t.Cleanup(func() {
		getSimpleText, getPassword, getYear = origST, origGP, origGY
	})

	next := func() (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return next()
	}
	getYear = func(r *bufio.Reader, prompt string, def int, w io.Writer) (int, error) {
		s, err := next()
		if err != nil {
			return 0, err
		}
		return GetYear(rdr(s+"\n"), prompt, def, io.Discard)
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, errors.New("no password")
		}
		p := []byte(passwords[0])
		passwords = passwords[1:]
		return p, nil
	}
}

// stubPasswords only replaces the password prompt.
func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(_ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, errors.New("no password")
		}
		p := []byte(passwords[0])
		passwords = passwords[1:]
		return p, nil
	}
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

type profileCall struct {
	email, name string
	year        int
	avatar      *string
}

type fakeAuth struct {
	state services.AuthState

	regEmail, regName string
	regYear           int
	regPass           []byte
	regErr            error

	loginEmail string
	loginPass  []byte
	loginErr   error

	logoutCalled bool

	profileCalls []profileCall
	profileErr   error
	profileMsg   string

	clearErrCalls int
}

func (f *fakeAuth) Register(_ context.Context, email, name string, year int, pass []byte) error {
	f.regEmail, f.regName, f.regYear = email, name, year
	f.regPass = pass
	if f.regErr == nil {
		f.state.IsAuthenticated = true
		f.state.CurrentUserEmail = email
	}
	return f.regErr
}

func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) error {
	f.loginEmail, f.loginPass = email, pass
	if f.loginErr == nil {
		f.state.IsAuthenticated = true
		f.state.CurrentUserEmail = email
	}
	return f.loginErr
}

func (f *fakeAuth) Logout(context.Context) {
	f.logoutCalled = true
	f.state = services.AuthState{}
}

func (f *fakeAuth) UpdateProfile(_ context.Context, email, name string, year int, avatar *string) error {
	f.profileCalls = append(f.profileCalls, profileCall{email, name, year, avatar})
	f.state.ProfileMessage = f.profileMsg
	return f.profileErr
}

func (f *fakeAuth) State() services.AuthState { return f.state }

func (f *fakeAuth) Subscribe(ctx context.Context) <-chan services.AuthState {
	ch := make(chan services.AuthState, 1)
	ch <- f.state
	close(ch)
	return ch
}

func (f *fakeAuth) Run(context.Context) {}

func (f *fakeAuth) ClearError() { f.clearErrCalls++ }

func (f *fakeAuth) ClearProfileMessage() { f.state.ProfileMessage = "" }

type fakeAvatars struct {
	email, src string
	ref        string
	err        error
}

func (f *fakeAvatars) Save(email, src string) (string, error) {
	f.email, f.src = email, src
	return f.ref, f.err
}

func newFakeApp(f *fakeAuth) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		authService: f,
		avatars:     &fakeAvatars{},
		log:         logging.Discard(),
		reader:      rdr(""),
		out:         out,
	}, out
}
