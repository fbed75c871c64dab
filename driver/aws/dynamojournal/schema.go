package dynamojournal

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dogmatiq/searchkit/driver/aws/internal/dynamox"
)

const (
	// journalAttr is the name of the attribute that stores the journal name on
	// each item. Together with [positionAttr], it forms the primary key of the
	// table.
	journalAttr = "J"

	// positionAttr is the name of the attribute that stores the position of
	// each record. Together with [journalAttr], it forms the primary key of the
	// table.
	//
	// The "meta-data" item has a position of -1, which sorts before every
	// record.
	positionAttr = "P"

	// recordAttr is the name of the attribute that stores the record data
	// itself. It is not present on the "meta-data" item.
	recordAttr = "R"

	// beginAttr is the name of the attribute on the "meta-data" item that
	// stores the position of the first record in the journal.
	beginAttr = "B"

	// endAttr is the name of the attribute on the "meta-data" item that stores
	// the position after the last record in the journal.
	endAttr = "E"
)

// metaDataPosition is the value of [positionAttr] on the "meta-data" item.
var metaDataPosition = &types.AttributeValueMemberN{Value: "-1"}

// keySchema is the primary key of the journal table.
var keySchema = []dynamox.KeyAttr{
	{
		Name:    journalAttr,
		Type:    types.ScalarAttributeTypeS,
		KeyType: types.KeyTypeHash,
	},
	{
		Name:    positionAttr,
		Type:    types.ScalarAttributeTypeN,
		KeyType: types.KeyTypeRange,
	},
}
