package model

// User is an account that owns tasks. Password holds whatever the configured
// credential hasher produced (a bcrypt hash, or the raw text in plaintext mode).
type User struct {
	ID       uint   `gorm:"column:id;primaryKey"`
	Username string `gorm:"column:username;unique"`
	Password string `gorm:"column:password"`
}

func (User) TableName() string {
	return "users"
}
