package model

// User is a registry staff account. The password column exists in the
// schema but is never carried on this struct past the credential check.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Fullname   string `json:"fullname"`
	Department string `json:"department"`
}
