package entity

import "time"

// Customer 客户
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:320"`
	Phone     string    `json:"phone" gorm:"size:15"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// CustomerAccount 客户账号，与客户一对一
type CustomerAccount struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:255;not null"`
	CustomerID   uint      `json:"customer_id" gorm:"not null;uniqueIndex"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
}

func (CustomerAccount) TableName() string {
	return "customer_accounts"
}
