package model

import "gorm.io/gorm"

// AutoMigrate 建表与索引（服务启动与测试共用同一份模型清单）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Profile{},
		&FriendRequest{},
		&BlockedUser{},
		&UserActivity{},
	)
}
