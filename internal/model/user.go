package model

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserName string `gorm:"size:100;not null" json:"userName"`

	Chats       []Chat       `gorm:"foreignKey:CreatedByID" json:"-"`
	Memberships []Membership `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

type UserDTO struct {
	ID       uint   `json:"id"`
	UserName string `json:"userName"`
}
