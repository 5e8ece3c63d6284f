package authn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
)

type fakeSession struct {
	user     *identity.User
	authTime time.Time
	cleared  int
}

func (f *fakeSession) User() (*identity.User, bool) {
	return f.user, f.user != nil
}

func (f *fakeSession) AuthTime() (time.Time, bool) {
	return f.authTime, f.user != nil
}

func (f *fakeSession) ClearUser() {
	f.user = nil
	f.cleared++
}

func TestFreshness_Evaluate(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	freshness := Freshness{Now: func() time.Time { return now }}

	testCases := []struct {
		name      string
		anonymous bool
		age       time.Duration
		prompts   []string
		maxAge    int64
		keep      bool
		reason    Reason
	}{
		{name: "anonymous", anonymous: true, prompts: []string{"login"}, maxAge: 1, reason: ReasonAnonymous},
		{name: "no constraint", age: time.Hour, keep: true, reason: ReasonFresh},
		{name: "prompt login", prompts: []string{"consent", "login"}, reason: ReasonPromptLogin},
		{name: "prompt login beats max age", prompts: []string{"login"}, maxAge: 3600, reason: ReasonPromptLogin},
		{name: "other prompts", prompts: []string{"consent", "select_account"}, keep: true, reason: ReasonFresh},
		{name: "within max age", age: 59 * time.Second, maxAge: 60, keep: true, reason: ReasonFresh},
		{name: "exactly max age", age: 60 * time.Second, maxAge: 60, keep: true, reason: ReasonFresh},
		{name: "rounds down", age: 60*time.Second + 499*time.Millisecond, maxAge: 60, keep: true, reason: ReasonFresh},
		{name: "rounds up", age: 60*time.Second + 500*time.Millisecond, maxAge: 60, reason: ReasonMaxAgeExceeded},
		{name: "too old", age: 61 * time.Second, maxAge: 60, reason: ReasonMaxAgeExceeded},
		{name: "zero max age", age: 10 * time.Hour, maxAge: 0, keep: true, reason: ReasonFresh},
		{name: "negative max age", age: 10 * time.Hour, maxAge: -1, keep: true, reason: ReasonFresh},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := &fakeSession{authTime: now.Add(-tc.age)}
			if !tc.anonymous {
				s.user = &identity.User{Subject: "1001"}
			}

			v := freshness.Evaluate(s, tc.prompts, tc.maxAge)

			assert.Equal(t, tc.keep, v.KeepAuthentication)
			assert.Equal(t, tc.reason, v.Reason)

			_, stillThere := s.User()
			assert.Equal(t, tc.keep, stillThere)

			if tc.anonymous || tc.keep {
				assert.Zero(t, s.cleared)
			} else {
				assert.Equal(t, 1, s.cleared)
			}
		})
	}
}

func TestFreshness_DefaultClock(t *testing.T) {
	s := &fakeSession{user: &identity.User{Subject: "1001"}, authTime: time.Now()}

	v := Freshness{}.Evaluate(s, nil, 3600)
	assert.True(t, v.KeepAuthentication)
}
