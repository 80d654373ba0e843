package catalog

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// BarcodeGenerator issues unique "BC"-prefixed codes from a snowflake node.
type BarcodeGenerator struct {
	node *snowflake.Node
}

func NewBarcodeGenerator(nodeID int64) (*BarcodeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("creating snowflake node: %w", err)
	}

	return &BarcodeGenerator{node: node}, nil
}

func (g *BarcodeGenerator) Barcode() string {
	return "BC" + g.node.Generate().String()
}
