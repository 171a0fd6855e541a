package types

// User is a placeholder account. It carries no behavior.
type User struct {
	UserID int64
}
