package blockchain

import (
	"github.com/LLFourn/bdk-cli/internal/logger"
)

var zlog *logger.Logger

func init() {
	zlog = logger.New("blockchain")
}
