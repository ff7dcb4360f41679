package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/helderandre/infinity-erp-v2-sub000/internal/config"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/database"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/logger"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/model"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/router"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/svc"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/utils"
	"github.com/helderandre/infinity-erp-v2-sub000/pkg/docvar"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("config/config.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(&cfg.Log)
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close()
	db := database.GetDB()

	if err := migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := seed(db); err != nil {
		log.Fatalf("seed: %v", err)
	}

	svc.Init(cfg, db)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		JSONEncoder:  utils.Marshal,
		JSONDecoder:  utils.Unmarshal,
	})
	router.Setup(app)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		log.Printf("server listening on http://%s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("server stopped")
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.ProcessTemplate{},
		&model.TemplateStage{},
		&model.TemplateTask{},
		&model.TemplateSubtask{},
		&model.ProcessInstance{},
		&model.InstanceStage{},
		&model.InstanceTask{},
		&model.DocumentTemplate{},
		&model.SystemVariable{},
		&model.DocType{},
		&model.EmailTemplate{},
	)
}

// seed fills the reference tables on first start so the editors have
// something to pick from.
func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.SystemVariable{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		vars := []model.SystemVariable{
			{Key: docvar.NormalizeKey("client_name"), Label: "Client name", Entity: "client", Status: 1},
			{Key: docvar.NormalizeKey("client_email"), Label: "Client email", Entity: "client", Status: 1},
			{Key: docvar.NormalizeKey("nif"), Label: "Tax number", Entity: "client", Status: 1},
			{Key: docvar.NormalizeKey("property_address"), Label: "Property address", Entity: "property", Status: 1},
			{Key: docvar.NormalizeKey("property_price"), Label: "Asking price", Entity: "property", Status: 1},
			{Key: docvar.NormalizeKey("agent_name"), Label: "Agent name", Entity: "agent", Status: 1},
			{Key: docvar.NormalizeKey("agency_name"), Label: "Agency name", Entity: "agency", Status: 1},
		}
		if err := db.Create(&vars).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&model.DocType{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		types := []model.DocType{
			{Name: "Identification document", Code: "id_doc", Status: 1},
			{Name: "Property deed", Code: "deed", Status: 1},
			{Name: "Energy certificate", Code: "energy_cert", Status: 1},
			{Name: "Mediation contract", Code: "mediation_contract", Status: 1},
		}
		if err := db.Create(&types).Error; err != nil {
			return err
		}
	}
	return nil
}
