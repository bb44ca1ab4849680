package providers

import (
	"fmt"
	"weddingsite/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %s", v.Errors.One())
	}
	if c.conf.Storage.Backup && c.conf.Storage.BackupDir == "" {
		return fmt.Errorf("invalid configuration: storage.backupDir is required when backups are enabled")
	}
	return nil
}
