package domain

import "time"

type User struct {
	Id           UserId    `json:"id"`
	Nickname     string    `json:"nickname"`
	Email        Email     `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserCreationData struct {
	Nickname     string
	Email        Email
	PasswordHash string
}
