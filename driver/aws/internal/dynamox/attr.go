package dynamox

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AttrAs fetches an attribute of type T from an item.
//
// It returns an error if the item is absent or a different type.
func AttrAs[T types.AttributeValue](
	item map[string]types.AttributeValue,
	name string,
) (v T, err error) {
	v, ok, err := TryAttrAs[T](item, name)
	if err != nil {
		return v, err
	}

	if !ok {
		return v, fmt.Errorf("item is corrupt: missing %q attribute", name)
	}

	return v, nil
}

// TryAttrAs fetches an attribute of type T from an item, if it is present.
//
// It returns an error if the attribute is present but is a different type.
func TryAttrAs[T types.AttributeValue](
	item map[string]types.AttributeValue,
	name string,
) (v T, ok bool, err error) {
	a, ok := item[name]
	if !ok {
		return v, false, nil
	}

	v, ok = a.(T)
	if !ok {
		return v, false, fmt.Errorf(
			"item is corrupt: %q attribute should be %s not %s",
			name,
			reflect.TypeOf(v).Elem().Name(),
			reflect.TypeOf(a).Elem().Name(),
		)
	}

	return v, true, nil
}

// Uint64 returns a numeric attribute value containing v.
func Uint64(v uint64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{
		Value: strconv.FormatUint(v, 10),
	}
}

// AttrAsUint64 fetches a numeric attribute from an item and parses it as an
// unsigned 64-bit integer.
func AttrAsUint64(
	item map[string]types.AttributeValue,
	name string,
) (uint64, error) {
	attr, err := AttrAs[*types.AttributeValueMemberN](item, name)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseUint(attr.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("item is corrupt: invalid %q attribute: %w", name, err)
	}

	return v, nil
}
