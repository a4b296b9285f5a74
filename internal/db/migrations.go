// internal/db/migrations.go
package db

import (
	"fmt"

	"gorm.io/gorm"
)

// MigrateLegacyColumns renames columns left over from the first schema
// revision (devices.ip -> devices.device_ip, reservations.user ->
// reservations.user_name) and builds the active-window index.
func MigrateLegacyColumns(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	dialect := db.Dialector.Name()

	if db.Migrator().HasTable("devices") {
		hasOld := db.Migrator().HasColumn("devices", "ip")
		hasNew := db.Migrator().HasColumn("devices", "device_ip")
		if hasOld && !hasNew {
			if err := db.Migrator().RenameColumn("devices", "ip", "device_ip"); err != nil {
				var e error
				switch dialect {
				case "mysql":
					e = db.Exec("ALTER TABLE `devices` CHANGE COLUMN `ip` `device_ip` varchar(255)").Error
				case "postgres":
					e = db.Exec(`ALTER TABLE "devices" RENAME COLUMN "ip" TO "device_ip"`).Error
				case "sqlite":
					e = db.Exec(`ALTER TABLE devices RENAME COLUMN ip TO device_ip`).Error
				default:
					e = err
				}
				if e != nil {
					return fmt.Errorf("rename devices.ip -> device_ip: %w", e)
				}
			}
		}
	}

	if db.Migrator().HasTable("reservations") {
		// `user` — зарезервированное слово
		hasOld := db.Migrator().HasColumn("reservations", "user")
		hasNew := db.Migrator().HasColumn("reservations", "user_name")
		if hasOld && !hasNew {
			if err := db.Migrator().RenameColumn("reservations", "user", "user_name"); err != nil {
				var e error
				switch dialect {
				case "mysql":
					e = db.Exec("ALTER TABLE `reservations` CHANGE COLUMN `user` `user_name` varchar(255) NOT NULL").Error
				case "postgres":
					e = db.Exec(`ALTER TABLE "reservations" RENAME COLUMN "user" TO "user_name"`).Error
				case "sqlite":
					e = db.Exec(`ALTER TABLE reservations RENAME COLUMN user TO user_name`).Error
				default:
					e = err
				}
				if e != nil {
					return fmt.Errorf("rename reservations.user -> user_name: %w", e)
				}
			}
		}
		if !db.Migrator().HasIndex("reservations", "idx_res_device_window") {
			switch dialect {
			case "postgres":
				_ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_res_device_window ON "reservations" ("device_id", "start_time", "end_time")`).Error
			default:
				_ = db.Exec("CREATE INDEX idx_res_device_window ON `reservations` (`device_id`, `start_time`, `end_time`)").Error
			}
		}
	}

	return nil
}
