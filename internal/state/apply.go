package state

// Apply is the pure transition function. It never performs I/O and always
// returns a state satisfying the authentication invariant: an event carrying
// an incomplete credential pair (user without token, or the reverse) degrades
// to the unauthenticated shape instead of producing a half-valid session.
func Apply(s State, ev Event) State {
	switch e := ev.(type) {
	case OperationStarted:
		next := s
		next.Loading = true
		if e.Biometric {
			next.Phase = PhaseRestoringBiometric
		} else {
			next.Phase = PhaseAuthenticating
		}
		return next

	case OperationFinished:
		next := s
		next.Loading = false
		if next.Authenticated() {
			next.Phase = PhaseAuthenticated
		} else {
			next.Phase = PhaseUnauthenticated
		}
		return next

	case RestoreCompleted:
		if e.User == nil || e.Token == "" {
			return Apply(s, RestoreEmpty{BiometricEnabled: e.BiometricEnabled})
		}
		return State{
			Phase:            PhaseAuthenticated,
			User:             e.User,
			Token:            e.Token,
			RefreshToken:     e.RefreshToken,
			BiometricEnabled: e.BiometricEnabled,
			RememberMe:       e.RememberMe,
		}

	case RestoreEmpty:
		return State{
			Phase:            PhaseUnauthenticated,
			BiometricEnabled: e.BiometricEnabled || s.BiometricEnabled,
			RememberMe:       s.RememberMe,
		}

	case SignedIn:
		if e.User == nil || e.Token == "" {
			return Apply(s, OperationFinished{})
		}
		next := s
		next.Phase = PhaseAuthenticated
		next.User = e.User
		next.Token = e.Token
		next.RefreshToken = e.RefreshToken
		next.Loading = false
		return next

	case SignedOut, SessionExpired:
		return State{
			Phase:            PhaseUnauthenticated,
			BiometricEnabled: s.BiometricEnabled,
		}

	case UserReplaced:
		if !s.Authenticated() || e.User == nil {
			return s
		}
		next := s
		next.User = e.User
		return next

	case TokensRotated:
		if !s.Authenticated() || e.Token == "" {
			return s
		}
		next := s
		next.Token = e.Token
		if e.RefreshToken != "" {
			next.RefreshToken = e.RefreshToken
		}
		return next

	case BiometricFlagChanged:
		next := s
		next.BiometricEnabled = e.Enabled
		return next

	case RememberMeChanged:
		next := s
		next.RememberMe = e.On
		return next

	default:
		return s
	}
}
