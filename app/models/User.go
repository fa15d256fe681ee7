package models

type User struct {
	Id       string `json:"id"`
	Email    string `json:"email" pg:",unique"`
	Password string `json:"-"`
}

type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}
