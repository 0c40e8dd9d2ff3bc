package main

import (
	"github.com/pngfun/backend/migration"
	"github.com/pngfun/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}
	defer s.close()

	if cctx.Bool("auto") {
		xcontext.Logger(s.ctx).Infof("Migrating database from entities")
		return migration.AutoMigrate(s.ctx)
	}

	return migration.Migrate(s.ctx)
}

func (s *srv) startRollback(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}
	defer s.close()

	return migration.Rollback(s.ctx)
}
