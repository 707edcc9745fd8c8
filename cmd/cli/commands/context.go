package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/lucasmdrs/escala/internal/config"
	"github.com/lucasmdrs/escala/pkg/db"
	"github.com/lucasmdrs/escala/pkg/notify"
	"github.com/lucasmdrs/escala/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg       *config.Config
	Database  *postgres.DB
	Directory db.MemberDirectory
	Notifier  *notify.Dispatcher
	Logger    *zap.Logger
	Ctx       context.Context
}
