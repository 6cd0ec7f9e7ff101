package boot

import (
	"bookify/src/common"
	"bookify/src/db"
	"bookify/src/lib"
	"bookify/src/models"
	"log"

	"gorm.io/gorm"
)

const bookingOverlapConstraint = "bookings_no_overlap"

func InitDb() *gorm.DB {
	db := db.GetDb()

	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	if err := EnsureBookingConstraints(db); err != nil {
		log.Fatalf("error creating booking constraints: %s", err.Error())
	}

	return db
}

// EnsureBookingConstraints stops two blocking bookings of one room from
// overlapping. Only postgres supports the exclusion constraint; other
// dialects rely on the row lock taken during checkout.
func EnsureBookingConstraints(tx *gorm.DB) error {
	if !db.IsPostgres(tx) {
		return nil
	}
	if err := tx.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	return tx.Exec(`
	DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '` + bookingOverlapConstraint + `') THEN
			ALTER TABLE bookings ADD CONSTRAINT ` + bookingOverlapConstraint + `
			EXCLUDE USING gist (room_id WITH =, daterange(check_in, check_out, '[)') WITH &&)
			WHERE (status IN (1, 2));
		END IF;
	END
	$$;
	`).Error
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	if err := common.StartCompletionSweep(); err != nil {
		log.Printf("Error scheduling completion sweep: %s\n", err.Error())
		return
	}
	log.Println("Jobs in queue:", len(sched.Jobs()))
	sched.Start()
}

func StopScheduler() {
	lib.StopScheduler()
}
