package convert

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"sketchgen/sketch"
)

var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("sketchgen"))

// AssignIDs gives every layer a name based UUID derived from seed and the
// layer position in the tree, so converting the same input twice yields
// the same identifiers.
func AssignIDs(root *sketch.Layer, seed string) {
	sketch.Walk(root, func(l *sketch.Layer, path []int) {
		var sb strings.Builder
		sb.WriteString(seed)
		for _, i := range path {
			sb.WriteByte('/')
			sb.WriteString(strconv.Itoa(i))
		}
		sb.WriteByte(':')
		sb.WriteString(l.Class)
		l.ObjectID = strings.ToUpper(uuid.NewSHA1(idNamespace, []byte(sb.String())).String())
	})
}
