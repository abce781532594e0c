package models

type User struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"size:512;uniqueIndex;not null"`
}

func (User) TableName() string { return "users" }

type UserDto struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func UserToDto(u User) UserDto {
	return UserDto{ID: u.ID, Name: u.Name, Email: u.Email}
}

func UserFromDto(d UserDto) User {
	return User{ID: d.ID, Name: d.Name, Email: d.Email}
}

func UsersToDto(users []User) []UserDto {
	out := make([]UserDto, 0, len(users))
	for _, u := range users {
		out = append(out, UserToDto(u))
	}
	return out
}
