package extract

import (
	"strings"

	"github.com/joseph-ayodele/pboc-bom/internal/document"
	"github.com/joseph-ayodele/pboc-bom/internal/entity"
)

func readPublicInfo(body []document.Block) entity.PublicInfo {
	return entity.PublicInfo{AccFund: readAccFund(SingleTableByFlag(body, "住房公积金参缴记录"))}
}

// readAccFund reads the housing fund table: payment rows under a 参缴地
// title, then employer rows under a 缴费单位 title filling them in order.
func readAccFund(t *document.Table) []entity.AccFund {
	out := []entity.AccFund{}
	if t == nil {
		return out
	}
	cls, counter := 0, 0
	for r := 0; r < t.Len(); r++ {
		switch {
		case strings.Contains(t.At(r, 1), "参缴地"):
			cls = 1
			continue
		case strings.Contains(t.At(r, 1), "缴费单位"):
			cls = 2
			continue
		}
		switch cls {
		case 1:
			out = append(out, entity.AccFund{
				Area:         t.At(r, 1),
				RegisterDate: t.At(r, 2),
				FirstMonth:   t.At(r, 3),
				ToMonth:      t.At(r, 4),
				State:        t.At(r, 5),
				Pay:          t.At(r, 6),
				OwnPercent:   t.At(r, 7),
				ComPercent:   t.At(r, 8),
			})
		case 2:
			if counter >= len(out) {
				continue
			}
			out[counter].OrganName = t.At(r, 1)
			out[counter].GetTime = t.At(r, 9)
			counter++
		}
	}
	return out
}
