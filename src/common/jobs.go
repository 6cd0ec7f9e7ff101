package common

import (
	"bookify/src/config"
	"bookify/src/db"
	"bookify/src/lib"
	"bookify/src/models"
	"bookify/src/utils"
	"log"
	"time"
)

const completionSweepJob = "complete-elapsed-bookings"

// StartCompletionSweep schedules RunCompletionSweep so stays that nobody
// reads still reach Completed.
func StartCompletionSweep() error {
	_, err := lib.CreateCronJob(completionSweepJob, config.CompletionSweepInterval(), RunCompletionSweep)
	return err
}

// RunCompletionSweep completes elapsed bookings and records the run.
func RunCompletionSweep() {
	db := db.GetDb()
	task := models.JobTask{Name: completionSweepJob, RunsAt: time.Now(), Status: models.JOB_STATUS_PENDING}
	if err := db.Create(&task).Error; err != nil {
		log.Printf("Error recording job %s: %s\n", completionSweepJob, err.Error())
	}
	affected, err := CompleteElapsedBookings(utils.Today())
	updates := map[string]any{"status": models.JOB_STATUS_COMPLETED, "affected": affected}
	if err != nil {
		log.Printf("Error completing elapsed bookings: %s\n", err.Error())
		msg := err.Error()
		updates["status"] = models.JOB_STATUS_FAILED
		updates["error"] = &msg
	} else if affected > 0 {
		log.Printf("Completed %d elapsed booking(s)\n", affected)
	}
	if task.ID > 0 {
		if err := db.Model(&task).Updates(updates).Error; err != nil {
			log.Printf("Error updating job %s: %s\n", completionSweepJob, err.Error())
		}
	}
}
