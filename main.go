package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"newswire/api"
	"newswire/common"
	"newswire/config"
	"newswire/images"
	"newswire/imports"
	"newswire/kafka"
	"newswire/notify"
	"newswire/pipeline"
	"newswire/social"
	"newswire/store"
	"newswire/subscriptions"
	"newswire/types"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	cfg := config.Load()

	st := store.New()
	st.Seed()

	// Subscription store: Redis when configured, in-memory otherwise.
	var subs subscriptions.Store
	var ledger pipeline.Ledger
	if cfg.RedisAddr != "" {
		redisStore, err := subscriptions.NewRedisStore(context.Background(), subscriptions.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
		})
		if err != nil {
			log.Fatalf("redis init failed: %v", err)
		}
		defer redisStore.Close()
		subs = redisStore
		ledger = pipeline.NewRedisLedger(redisStore.Client())
		log.Printf("Subscriptions: redis (%s)", cfg.RedisAddr)
	} else {
		subs = subscriptions.NewMemoryStore()
		ledger = pipeline.NewMemoryLedger()
		log.Printf("Subscriptions: in-memory (REDIS_ADDR not set)")
	}

	mailer := notify.NewSMTPMailer(cfg.SMTPAddr, cfg.FromEmail, cfg.SMTPUser, cfg.SMTPPass)
	dispatcher := notify.NewDispatcher(mailer, cfg.SiteBaseURL)
	poster := social.NewPoster(cfg.XBearerToken, cfg.XTweetEndpoint)
	if poster.Enabled() {
		log.Printf("Social posting: enabled (%s)", cfg.XTweetEndpoint)
	} else {
		log.Printf("Social posting: disabled (X_BEARER_TOKEN not set)")
	}

	pipe := pipeline.New(st, subscriptions.NewIndex(subs), dispatcher, poster)

	// Dispatch path: Kafka when configured, synchronous in-process otherwise.
	// Either way the approval write has already committed before Fire runs,
	// and Fire never reports failure to the saving request.
	var producer *kafka.Producer
	var consumer *kafka.Consumer
	if cfg.KafkaEnabled() {
		var err error
		producer, err = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatalf("kafka producer init failed: %v", err)
		}
		consumer, err = kafka.NewApprovalConsumer(kafka.ApprovalConsumerConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    cfg.KafkaTopic,
			GroupID:  cfg.KafkaGroupID,
			Pipeline: pipe,
			Ledger:   ledger,
		})
		if err != nil {
			log.Fatalf("kafka consumer init failed: %v", err)
		}
		if err := consumer.Start(context.Background()); err != nil {
			log.Fatalf("kafka consumer start failed: %v", err)
		}
		log.Printf("Dispatch: kafka (%v, topic %s)", cfg.KafkaBrokers, cfg.KafkaTopic)
	} else {
		log.Printf("Dispatch: in-process (KAFKA_BOOTSTRAP_SERVERS not set)")
	}

	fire := func(ctx context.Context, event types.ApprovalEvent) {
		if producer != nil {
			if err := producer.PublishApproval(event); err != nil {
				log.Printf("dispatch: publishing event for %s failed: %v", event.ArticleID, err)
			}
			return
		}
		if _, err := pipe.RunOnce(ctx, event, ledger); err != nil {
			log.Printf("dispatch: pipeline for %s failed: %v", event.ArticleID, err)
		}
	}

	// Optional S3-backed image storage.
	var imageStore *images.Store
	if cfg.S3Bucket != "" {
		s3c, err := common.NewS3(context.Background(), common.S3Config{
			Region:       cfg.S3Region,
			UsePathStyle: cfg.S3UsePathStyle,
		})
		if err != nil {
			log.Printf("Warning: failed to init S3 client: %v (image uploads disabled)", err)
		} else {
			imageStore = images.NewStore(s3c, cfg.S3Bucket, cfg.S3Prefix)
			log.Printf("Image storage: s3 bucket %q", cfg.S3Bucket)
		}
	} else {
		log.Printf("Image storage: disabled (S3_BUCKET not set)")
	}

	router := api.NewRouter(&api.Deps{
		Store:    st,
		Subs:     subs,
		Importer: imports.NewImporter(st),
		Images:   imageStore,
		Fire:     fire,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting API server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Printf("Kafka consumer close error: %v", err)
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("Kafka producer close error: %v", err)
		}
	}

	log.Println("Server stopped")
}
