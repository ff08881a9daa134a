package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"motoslot/config"
	"motoslot/models"
	"motoslot/services/notification"

	"github.com/hibiken/asynq"
)

// InitSMSWorker runs the async SMS delivery worker in background.
func InitSMSWorker(sender notification.SMSSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeSMSSend, handleSMSTask(sender))

	// Start async worker with retry logic
	go func() {
		log.Println("[SMSWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SMSWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SMSWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSMSTask(sender notification.SMSSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var sms models.BookingSMS
		if err := json.Unmarshal(task.Payload(), &sms); err != nil {
			log.Printf("[SMSHandler] invalid payload: %v", err)
			return err
		}

		if err := sender.SendBookingSMS(ctx, sms); err != nil {
			log.Printf("[SMSHandler] failed to send sms for %s: %v", sms.BookingRef, err)
			return err
		}
		return nil
	}
}
