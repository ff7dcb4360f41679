// Package svc holds the global service context.
package svc

import (
	"github.com/helderandre/infinity-erp-v2-sub000/internal/config"

	"gorm.io/gorm"
)

// ServiceContext bundles the dependencies shared across handlers and logic.
type ServiceContext struct {
	Config *config.Config
	DB     *gorm.DB
}

// Ctx is the global service context, set once at startup.
var Ctx *ServiceContext

// Init sets the global service context.
func Init(cfg *config.Config, db *gorm.DB) {
	Ctx = &ServiceContext{Config: cfg, DB: db}
}
