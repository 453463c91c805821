package db

import (
	"log"
	"time"

	"github.com/BruksfildServices01/studio-console/internal/config"
	"github.com/BruksfildServices01/studio-console/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.StaffMember{},
		&models.Location{},
		&models.Service{},
		&models.Availability{},
		&models.Appointment{},
		&models.RescheduleRequest{},
		&models.ShiftTemplate{},
		&models.ScheduleEntry{},
		&models.BookingSettings{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Retaguarda no banco para a trava de agenda: dois agendamentos
	// ativos do mesmo profissional nunca se sobrepõem, mesmo que uma
	// escrita chegue por fora da aplicação.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                    ADD CONSTRAINT appointments_no_overlap
                    EXCLUDE USING gist (
                        staff_member_id WITH =,
                        tstzrange(scheduled_at, end_time) WITH &&
                    )
                    WHERE (status <> 'cancelled' AND staff_member_id IS NOT NULL);
            END IF;
        END $$;
    `)

	// No máximo uma solicitação de remarcação pendente por agendamento.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_reschedule_requests_pending
        ON reschedule_requests (appointment_id)
        WHERE status = 'pending'
    `)

	db.Exec(`
        UPDATE booking_settings
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
