package codec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// WrapTuple builds the record form of a tuple: {"_1": items[0], "_2": items[1], ...}.
func WrapTuple[T any](items []T) map[string]T {
	out := make(map[string]T, len(items))
	for i, item := range items {
		out["_"+strconv.Itoa(i+1)] = item
	}
	return out
}

// UnwrapTuple returns the elements of a record-form tuple ordered by
// position. Positions compare numerically, so _10 follows _9.
func UnwrapTuple[T any](tuple map[string]T) []T {
	keys := tupleKeys(tuple)
	out := make([]T, len(keys))
	for i, k := range keys {
		out[i] = tuple[k]
	}
	return out
}

// TupleString concatenates the elements of a record-form tuple in order.
func TupleString[T any](tuple map[string]T) string {
	var b strings.Builder
	for _, k := range tupleKeys(tuple) {
		fmt.Fprint(&b, tuple[k])
	}
	return b.String()
}

func tupleKeys[T any](tuple map[string]T) []string {
	keys := make([]string, 0, len(tuple))
	for k := range tuple {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return tuplePosition(keys[i]) < tuplePosition(keys[j])
	})
	return keys
}

func tuplePosition(key string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(key, "_"))
	if err != nil {
		return 0
	}
	return n
}
