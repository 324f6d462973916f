package sessionkit

import "time"

// UserRecord is the full application-level user model owned by the session
// manager while a session is active. Records are immutable by replacement: a
// lifecycle operation that changes the user swaps in a new value, never
// mutates fields in place.
type UserRecord struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	DisplayName  string            `json:"displayName"`
	Preferences  Preferences       `json:"preferences"`
	Profile      ProfileAttributes `json:"profile"`
	Subscription Subscription      `json:"subscription"`
	CreatedAt    time.Time         `json:"createdAt"`
	LastLoginAt  time.Time         `json:"lastLoginAt"`
}

// Preferences holds per-user notification, locale, and unit settings.
type Preferences struct {
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	ReminderHour         int    `json:"reminderHour"`
	Locale               string `json:"locale"`
	Units                string `json:"units"`
}

// ProfileAttributes holds wellness goals, interests, and gamification counters.
type ProfileAttributes struct {
	Goals             []string `json:"goals"`
	Interests         []string `json:"interests"`
	SessionsCompleted int      `json:"sessionsCompleted"`
	StreakDays        int      `json:"streakDays"`
	AuraPoints        int      `json:"auraPoints"`
}

// Subscription carries the plan tier and the feature flags unlocked by it.
type Subscription struct {
	Plan      string    `json:"plan"`
	Features  []string  `json:"features"`
	RenewsAt  time.Time `json:"renewsAt"`
	AutoRenew bool      `json:"autoRenew"`
}

// Identity is the normalized result of any provider sign-in: the tuple every
// backend (password, Google, Facebook) is reduced to before the session flows
// see it.
type Identity struct {
	ExternalID   string
	Email        string
	DisplayName  string
	IDToken      string
	RefreshToken string
	NewAccount   bool
}

// RegisterInput is the input for [Manager.Register].
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Preferences *PreferencesUpdate
}

// NewProfile seeds profile creation for a first sign-in.
type NewProfile struct {
	ExternalID  string
	Email       string
	DisplayName string
	Preferences *PreferencesUpdate
}

// SessionSnapshot is a point-in-time copy of the authoritative session state,
// returned by [Manager.Snapshot]. User is nil while unauthenticated.
type SessionSnapshot struct {
	User             *UserRecord
	Token            string
	RefreshToken     string
	IsAuthenticated  bool
	IsLoading        bool
	BiometricEnabled bool
	RememberMe       bool
}

// ProfileUpdate is a partial user update. Nil fields are left untouched;
// nested sections merge independently against their own field sets (see
// [ProfileUpdate.ApplyTo]).
type ProfileUpdate struct {
	DisplayName  *string                  `json:"displayName,omitempty"`
	Preferences  *PreferencesUpdate       `json:"preferences,omitempty"`
	Profile      *ProfileAttributesUpdate `json:"profile,omitempty"`
	Subscription *SubscriptionUpdate      `json:"subscription,omitempty"`
}

// PreferencesUpdate is the partial form of [Preferences].
type PreferencesUpdate struct {
	NotificationsEnabled *bool   `json:"notificationsEnabled,omitempty"`
	ReminderHour         *int    `json:"reminderHour,omitempty"`
	Locale               *string `json:"locale,omitempty"`
	Units                *string `json:"units,omitempty"`
}

// ProfileAttributesUpdate is the partial form of [ProfileAttributes].
type ProfileAttributesUpdate struct {
	Goals             *[]string `json:"goals,omitempty"`
	Interests         *[]string `json:"interests,omitempty"`
	SessionsCompleted *int      `json:"sessionsCompleted,omitempty"`
	StreakDays        *int      `json:"streakDays,omitempty"`
	AuraPoints        *int      `json:"auraPoints,omitempty"`
}

// SubscriptionUpdate is the partial form of [Subscription].
type SubscriptionUpdate struct {
	Plan      *string    `json:"plan,omitempty"`
	Features  *[]string  `json:"features,omitempty"`
	RenewsAt  *time.Time `json:"renewsAt,omitempty"`
	AutoRenew *bool      `json:"autoRenew,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u ProfileUpdate) Empty() bool {
	return u.DisplayName == nil && u.Preferences == nil && u.Profile == nil && u.Subscription == nil
}

// ApplyTo merges the partial update into base and returns the replacement
// record. A shallow top-level merge is not sufficient here: each nested
// section is merged against its own field set, so setting a single preference
// never clobbers its siblings.
func (u ProfileUpdate) ApplyTo(base UserRecord) UserRecord {
	next := base
	if u.DisplayName != nil {
		next.DisplayName = *u.DisplayName
	}
	if u.Preferences != nil {
		next.Preferences = u.Preferences.applyTo(base.Preferences)
	}
	if u.Profile != nil {
		next.Profile = u.Profile.applyTo(base.Profile)
	}
	if u.Subscription != nil {
		next.Subscription = u.Subscription.applyTo(base.Subscription)
	}
	return next
}

func (u PreferencesUpdate) applyTo(base Preferences) Preferences {
	next := base
	if u.NotificationsEnabled != nil {
		next.NotificationsEnabled = *u.NotificationsEnabled
	}
	if u.ReminderHour != nil {
		next.ReminderHour = *u.ReminderHour
	}
	if u.Locale != nil {
		next.Locale = *u.Locale
	}
	if u.Units != nil {
		next.Units = *u.Units
	}
	return next
}

func (u ProfileAttributesUpdate) applyTo(base ProfileAttributes) ProfileAttributes {
	next := base
	if u.Goals != nil {
		next.Goals = append([]string(nil), (*u.Goals)...)
	}
	if u.Interests != nil {
		next.Interests = append([]string(nil), (*u.Interests)...)
	}
	if u.SessionsCompleted != nil {
		next.SessionsCompleted = *u.SessionsCompleted
	}
	if u.StreakDays != nil {
		next.StreakDays = *u.StreakDays
	}
	if u.AuraPoints != nil {
		next.AuraPoints = *u.AuraPoints
	}
	return next
}

func (u SubscriptionUpdate) applyTo(base Subscription) Subscription {
	next := base
	if u.Plan != nil {
		next.Plan = *u.Plan
	}
	if u.Features != nil {
		next.Features = append([]string(nil), (*u.Features)...)
	}
	if u.RenewsAt != nil {
		next.RenewsAt = *u.RenewsAt
	}
	if u.AutoRenew != nil {
		next.AutoRenew = *u.AutoRenew
	}
	return next
}
