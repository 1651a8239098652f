// Package authstate mirrors the server-side auth lifecycle in a client view
// model: a pure transition function over login/logout/password-change events.
// The state is a UI synchronization aid, never authoritative.
package authstate

// ActionType identifies an auth lifecycle event.
type ActionType string

const (
	LoginAttempt          ActionType = "LOGIN_USER"
	LoginSuccess          ActionType = "LOGIN_SUCCESS"
	LoginError            ActionType = "LOGIN_ERROR"
	ChangePasswordAttempt ActionType = "CHANGE_PASSWORD"
	ChangePasswordSuccess ActionType = "CHANGE_PASSWORD_SUCCESS"
	ChangePasswordError   ActionType = "CHANGE_PASSWORD_ERROR"
	Logout                ActionType = "LOGOUT_USER"
)

// User is the client-side principal snapshot.
type User struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Credentials is a pending login submission.
type Credentials struct {
	Email    string
	Password string
}

type State struct {
	IsLogged      bool
	UserData      User
	UserDataInput Credentials
	LoginError    string
	Loading       bool
	Change        bool
}

// Action carries the event type plus whichever payload the type uses.
type Action struct {
	Type  ActionType
	User  User
	Input Credentials
	Err   string
}

// Initial is the unauthenticated starting state.
func Initial() State {
	return State{}
}

// Reduce applies an auth event to the state. It is deterministic and free of
// side effects; unrecognized action types leave the state unchanged.
func Reduce(state State, action Action) State {
	switch action.Type {
	case LoginAttempt:
		state.UserDataInput = action.Input
		state.Loading = true
		state.IsLogged = false
		return state

	case LoginSuccess:
		state.UserDataInput = Credentials{}
		state.UserData = action.User
		state.IsLogged = true
		state.Loading = false
		state.LoginError = ""
		return state

	case LoginError:
		state.IsLogged = false
		state.Loading = false
		state.LoginError = action.Err
		return state

	case ChangePasswordAttempt:
		state.Loading = true
		state.Change = false
		return state

	case ChangePasswordSuccess:
		state.Loading = false
		state.Change = true
		return state

	case ChangePasswordError:
		state.Loading = false
		state.Change = false
		return state

	case Logout:
		return Initial()

	default:
		return state
	}
}
