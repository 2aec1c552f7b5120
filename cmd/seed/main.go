package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/config"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/db"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds a handful of active scholarship applications for local development.
// Refuses to run against a non-empty table unless FORCE_SEED=true.
func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(
		&model.ScholarshipApplication{},
		&model.SupporterContribution{},
		&model.StudentCommitment{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if os.Getenv("FORCE_SEED") != "true" {
		var count int64
		if err := gdb.WithContext(ctx).Model(&model.ScholarshipApplication{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count applications: %w", err)
		}
		if count > 0 {
			log.Printf("applications already exist; skipping seed (set FORCE_SEED=true to override)")
			return nil
		}
	}

	apps := buildSeedApplications()
	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range apps {
			if err := tx.Create(&apps[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert seed applications: %w", err)
	}
	log.Printf("seeded %d applications", len(apps))
	return nil
}

func buildSeedApplications() []model.ScholarshipApplication {
	wishlist := "https://www.amazon.co.jp/hz/wishlist/ls/EXAMPLE"
	return []model.ScholarshipApplication{
		{
			ID:                     uuid.NewString(),
			UserID:                 "seed-student-1",
			Title:                  "英検準1級の単語帳が欲しいです",
			ItemDescription:        "英検準1級 でる順パス単",
			ItemPrice:              1980,
			RequestedAmount:        1980,
			Enthusiasm:             "毎日30分、通学時間に単語を覚えます。",
			LongTermGoal:           "高校卒業までに英検準1級に合格して、国際系の学部に進学したいです。",
			AmazonWishlistURL:      &wishlist,
			Status:                 model.ApplicationStatusActive,
			EntireReportPeriodDays: 60,
			ReportIntervalDays:     7,
		},
		{
			ID:                     uuid.NewString(),
			UserID:                 "seed-student-2",
			Title:                  "物理のエッセンスで受験勉強",
			ItemDescription:        "物理のエッセンス 力学・波動",
			ItemPrice:              924,
			RequestedAmount:        924,
			Enthusiasm:             "週3回、問題演習の記録を投稿します。",
			LongTermGoal:           "工学部に進んでロボット開発に携わりたいです。",
			Status:                 model.ApplicationStatusActive,
			EntireReportPeriodDays: 90,
			ReportIntervalDays:     14,
		},
		{
			ID:                     uuid.NewString(),
			UserID:                 "seed-student-3",
			Title:                  "簿記3級のテキストをお願いします",
			ItemDescription:        "スッキリわかる 日商簿記3級",
			ItemPrice:              1100,
			RequestedAmount:        1100,
			Enthusiasm:             "2月の試験に向けて毎日1章ずつ進めます。",
			LongTermGoal:           "商業高校の学びを活かして経理の仕事に就きたいです。",
			Status:                 model.ApplicationStatusActive,
			EntireReportPeriodDays: 30,
			ReportIntervalDays:     3,
		},
	}
}
