package model

type Message struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Text   string `gorm:"size:500;not null" json:"text"`
	ChatID uint   `gorm:"not null" json:"chatId"`
	UserID uint   `gorm:"not null" json:"userId"`

	Chat *Chat `gorm:"foreignKey:ChatID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

type MessageDTO struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	ChatID   uint   `json:"chatId"`
	ChatName string `json:"chatName"`
	UserID   uint   `json:"userId"`
	UserName string `json:"userName"`
}
