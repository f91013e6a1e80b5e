package snowflake

//go:generate go run go.uber.org/mock/mockgen -source=./snowflake.go -destination=./mocks/snowflake_mock.go -package=mocks

import (
	"fmt"

	"resort/config"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog/log"
)

const InvoicePrefix = "INV-"

// Generator issues invoice numbers. Ids are time ordered and unique per node,
// and nodes with distinct ids never collide.
type Generator interface {
	InvoiceNumber() string
}

type generator struct {
	node *snowflake.Node
}

func New(cfg *config.Config) Generator {
	gen, err := NewWithNode(cfg.App.NodeID)
	if err != nil {
		log.Fatal().Err(err).Int64("node", cfg.App.NodeID).Msg("Failed to create invoice number generator")
	}

	return gen
}

func NewWithNode(nodeID int64) (Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &generator{node: node}, nil
}

func (g *generator) InvoiceNumber() string {
	return InvoicePrefix + g.node.Generate().String()
}
