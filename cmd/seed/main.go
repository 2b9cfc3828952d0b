package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/classroom-hub/classroom-backend/internal/config"
	"github.com/classroom-hub/classroom-backend/internal/database"
	"github.com/classroom-hub/classroom-backend/internal/logger"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/repository"
	"github.com/classroom-hub/classroom-backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type seedSubject struct {
	code, name string
}

type seedDepartment struct {
	code, name string
	subjects   []seedSubject
}

var departments = []seedDepartment{
	{"MATH", "Mathematics", []seedSubject{{"MATH101", "Calculus I"}, {"MATH201", "Linear Algebra"}}},
	{"CS", "Computer Science", []seedSubject{{"CS101", "Intro to Programming"}, {"CS220", "Data Structures"}}},
	{"PHYS", "Physics", []seedSubject{{"PHYS101", "Mechanics"}}},
}

var studentNames = []string{
	"Ada Moreno", "Ben Okafor", "Chloe Tan", "Daniel Weiss", "Esme Laurent",
	"Farid Haddad", "Grace Lindqvist", "Hiro Sato", "Ines Duarte", "Jonas Berg",
	"Kemi Adeyemi", "Liam Walsh", "Mina Park", "Noah Fischer", "Olivia Reyes",
	"Pavel Novak", "Quinn Harper", "Rosa Jimenez", "Sami Nieminen", "Tara Singh",
}

func main() {
	var password string
	flag.StringVar(&password, "password", "classroom123", "Password for every seeded user")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	quiet := zerolog.Nop()
	userRepo := repository.NewUserRepository(pool)
	departmentService := service.NewDepartmentService(repository.NewDepartmentRepository(pool), quiet)
	subjectService := service.NewSubjectService(repository.NewSubjectRepository(pool), quiet)
	classService := service.NewClassService(repository.NewClassRepository(pool), quiet)
	enrollmentService := service.NewEnrollmentService(repository.NewEnrollmentRepository(pool), quiet)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	fmt.Println("=== Seeding Classroom Data ===")

	// ─── Teacher ───────────────────────────────────────────────────────
	teacherID, err := ensureUser(ctx, pool, userRepo, "Morgan Blake", "teacher@classroom.local", model.RoleTeacher, string(hash))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed teacher")
	}

	// ─── Departments, Subjects, Classes ────────────────────────────────
	var classIDs []int
	for _, d := range departments {
		deptID, err := departmentService.Create(ctx, &model.CreateDepartmentRequest{Code: d.code, Name: d.name})
		if errors.Is(err, database.ErrUniqueViolation) {
			err = pool.QueryRow(ctx, `SELECT id FROM departments WHERE code = $1`, d.code).Scan(&deptID)
		}
		if err != nil {
			log.Fatal().Err(err).Str("code", d.code).Msg("Failed to seed department")
		}

		for _, s := range d.subjects {
			subjectID, err := subjectService.Create(ctx, &model.CreateSubjectRequest{Code: s.code, Name: s.name, DepartmentID: deptID})
			if errors.Is(err, database.ErrUniqueViolation) {
				err = pool.QueryRow(ctx, `SELECT id FROM subjects WHERE code = $1`, s.code).Scan(&subjectID)
			}
			if err != nil {
				log.Fatal().Err(err).Str("code", s.code).Msg("Failed to seed subject")
			}

			classID, err := classService.Create(ctx, &model.CreateClassRequest{
				Name:      s.name + " - Section A",
				SubjectID: subjectID,
				TeacherID: teacherID,
			})
			if err != nil {
				log.Fatal().Err(err).Str("subject", s.code).Msg("Failed to seed class")
			}
			classIDs = append(classIDs, classID)
		}
		fmt.Printf("Seeded department %s with %d subjects\n", d.code, len(d.subjects))
	}

	// ─── Students & Enrollments ────────────────────────────────────────
	successCount := 0
	for i, name := range studentNames {
		email := fmt.Sprintf("student%02d@classroom.local", i+1)
		studentID, err := ensureUser(ctx, pool, userRepo, name, email, model.RoleStudent, string(hash))
		if err != nil {
			fmt.Printf("Error creating student %s (%s): %v\n", name, email, err)
			continue
		}

		// Every student takes two classes, rotating through the catalog.
		student := &model.Principal{UserID: studentID, Role: model.RoleStudent}
		for _, classID := range []int{classIDs[i%len(classIDs)], classIDs[(i+1)%len(classIDs)]} {
			_, err := enrollmentService.Create(ctx, student, &model.CreateEnrollmentRequest{ClassID: classID})
			if err != nil && !errors.Is(err, repository.ErrDuplicateEnrollment) {
				fmt.Printf("Error enrolling %s in class %d: %v\n", email, classID, err)
			}
		}
		successCount++
	}

	fmt.Printf("\nSeed completed! %d classes, %d/%d students enrolled.\n", len(classIDs), successCount, len(studentNames))
}

// ensureUser creates a credential user or returns the id of the one already
// registered under email.
func ensureUser(ctx context.Context, pool *pgxpool.Pool, users *repository.UserRepository, name, email string, role model.Role, hash string) (string, error) {
	u := &model.User{Name: name, Email: email, Role: role}
	err := users.CreateWithPassword(ctx, u, hash)
	if errors.Is(err, repository.ErrEmailTaken) {
		var id string
		err = pool.QueryRow(ctx, `SELECT id FROM "user" WHERE email = $1`, email).Scan(&id)
		return id, err
	}
	return u.ID, err
}
