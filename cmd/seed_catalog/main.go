package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"lingua_webapp/internal/db"
	"lingua_webapp/internal/domain"
	"lingua_webapp/internal/repository"
	"lingua_webapp/internal/service"
)

// Seeds a small Spanish course (2 chapters, 2 units each, 2 lessons per unit,
// 3 exercises per lesson) plus a test learner, and prints a session token.
func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()

	var languageID int64
	err := pool.QueryRow(ctx, `
		INSERT INTO languages (code, title)
		VALUES ('es', 'Spanish')
		ON CONFLICT (code) DO UPDATE SET title = EXCLUDED.title
		RETURNING id`).Scan(&languageID)
	if err != nil {
		log.Fatalf("seed language failed: %v", err)
	}
	log.Printf("language id=%d\n", languageID)

	for ci := 1; ci <= 2; ci++ {
		var chapterID int64
		err := pool.QueryRow(ctx, `
			INSERT INTO chapters (language_id, title, sort_order)
			VALUES ($1, $2, $3)
			RETURNING id`,
			languageID, chapterTitle(ci), ci).Scan(&chapterID)
		if err != nil {
			log.Fatalf("seed chapter failed: %v", err)
		}

		for ui := 1; ui <= 2; ui++ {
			var unitID int64
			err := pool.QueryRow(ctx, `
				INSERT INTO units (chapter_id, title, sort_order)
				VALUES ($1, $2, $3)
				RETURNING id`,
				chapterID, unitTitle(ci, ui), ui).Scan(&unitID)
			if err != nil {
				log.Fatalf("seed unit failed: %v", err)
			}

			for li := 1; li <= 2; li++ {
				var lessonID int64
				err := pool.QueryRow(ctx, `
					INSERT INTO lessons (unit_id, title, sort_order, xp_reward)
					VALUES ($1, $2, $3, 10)
					RETURNING id`,
					unitID, lessonTitle(ci, ui, li), li).Scan(&lessonID)
				if err != nil {
					log.Fatalf("seed lesson failed: %v", err)
				}

				for ei := 1; ei <= 3; ei++ {
					if _, err := pool.Exec(ctx, `
						INSERT INTO exercises (lesson_id, sort_order)
						VALUES ($1, $2)`, lessonID, ei); err != nil {
						log.Fatalf("seed exercise failed: %v", err)
					}
				}
			}
		}
	}
	log.Println("catalog seeded")

	users := repository.NewUserRepository(pool)
	u := &domain.UserAccount{
		ClerkID:  "user_seed_test",
		Username: "testlearner",
		Name:     "Test Learner",
		Country:  "GE",
	}
	if err := users.Upsert(ctx, u); err != nil {
		log.Fatalf("seed user failed: %v", err)
	}
	log.Printf("user id=%d clerk_id=%s\n", u.ID, u.ClerkID)

	service.InitJWT(secret, secret)
	token, err := service.GenerateSession(u.ID, u.Role)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}

func chapterTitle(c int) string {
	return fmt.Sprintf("Chapter %d", c)
}

func unitTitle(c, u int) string {
	return fmt.Sprintf("Chapter %d Unit %d", c, u)
}

func lessonTitle(c, u, l int) string {
	return fmt.Sprintf("Chapter %d Unit %d Lesson %d", c, u, l)
}
