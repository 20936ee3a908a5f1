package main

import (
	"encoding/json"

	"github.com/robfig/cron/v3"
	logrus "github.com/sirupsen/logrus"

	"memelaunch/internal/service"
	"memelaunch/pkg/config"
	"memelaunch/schedule"
)

func main() {
	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	config.InitDB()

	// Initialize RabbitMQ
	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	var opts []service.Option
	publisher, err := config.NewPublisher()
	if err != nil {
		logrus.Fatal("Create publisher failed: ", err)
	}
	defer publisher.Close()
	opts = append(opts, service.WithEvents(publisher))

	svc := service.New(config.DB, opts...)

	// Recurring tasks: settle expired proving periods every minute, snapshot
	// platform counters every ten.
	c := cron.New()
	if _, err := c.AddFunc("* * * * *", func() {
		schedule.FinalizeExpiredMemes(svc)
	}); err != nil {
		logrus.Fatal("Failed to schedule finalize sweep: ", err)
	}
	if _, err := c.AddFunc("*/10 * * * *", func() {
		schedule.LogPlatformStats(svc)
	}); err != nil {
		logrus.Fatal("Failed to schedule platform snapshot: ", err)
	}
	c.Start()
	defer c.Stop()

	// Deposit feed: the chain watcher publishes inbound wallet transfers,
	// this worker credits the ledger.
	msgConsumer, err := config.NewConsumer(config.QueueDeposits)
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	logrus.Info("Launchpad worker started, waiting for deposit messages...")

	err = msgConsumer.Consume(func(msg []byte) error {
		var deposit service.DepositMessage
		if err := json.Unmarshal(msg, &deposit); err != nil {
			logrus.Errorf("Failed to unmarshal deposit message: %v", err)
			return err
		}

		if err := svc.CreditDeposit(deposit.Address, deposit.Amount); err != nil {
			logrus.Errorf("Failed to credit deposit for %s: %v", deposit.Address, err)
			return err
		}

		logrus.Infof("Credited %d lamports to %s", deposit.Amount, deposit.Address)
		return nil
	})
	if err != nil {
		logrus.Fatal("Consumer stopped: ", err)
	}
}
