package backend

import (
	"github.com/LLFourn/bdk-cli/command"
	"github.com/LLFourn/bdk-cli/keys"
	"github.com/LLFourn/bdk-cli/models"
)

type Keys struct {
	svc keys.Service
}

func (k *Keys) Handle(network models.Network, op command.KeyOp) (interface{}, error) {
	return k.svc.Handle(network, op)
}
