package models

// User is a kiosk account. Password holds whatever the configured
// password mode stores: the raw text in plain mode, a bcrypt hash otherwise.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email    string `gorm:"unique;not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	Password string `gorm:"not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}
