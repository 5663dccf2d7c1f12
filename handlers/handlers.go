package handlers

import (
	"storepulse/analytics"
	"storepulse/db"
	"storepulse/service"
)

// @title           StorePulse Analytics API
// @version         1.0
// @description     Natural-language analytics for retail operations - ask business questions in plain language and get SQL-backed answers with chart hints and insights

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:9090
// @BasePath  /

// @schemes   http https

type Handlers struct {
	db         *db.DB
	engine     *analytics.Engine
	sqlService *service.PostgresService
}

func New(db *db.DB, engine *analytics.Engine, sqlService *service.PostgresService) *Handlers {
	return &Handlers{
		db:         db,
		engine:     engine,
		sqlService: sqlService,
	}
}
