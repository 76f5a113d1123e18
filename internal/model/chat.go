package model

type Chat struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	CreatedByID uint   `gorm:"not null" json:"createdById"`

	CreatedBy   *User        `gorm:"foreignKey:CreatedByID" json:"-"`
	Messages    []Message    `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;" json:"-"`
	Memberships []Membership `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;" json:"-"`
}

// Membership is one row of a chat's roster. The composite primary key is
// what ultimately guards against duplicate concurrent joins.
type Membership struct {
	UserID uint `gorm:"primaryKey" json:"userId"`
	ChatID uint `gorm:"primaryKey" json:"chatId"`
}

func (Membership) TableName() string {
	return "user_chats"
}

type ChatDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	CreatedByID uint   `json:"createdById"`
	CreatorName string `json:"creatorName"`
}
