package entity

import "gorm.io/gorm"

// Models 商城全部表模型，顺序即建表顺序
func Models() []any {
	return []any{
		&Customer{},
		&CustomerAccount{},
		&Product{},
		&Order{},
		&OrderProduct{},
	}
}

// AutoMigrate 自动迁移商城表
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Order{}, "Products", &OrderProduct{}); err != nil {
		return err
	}
	return db.AutoMigrate(Models()...)
}
