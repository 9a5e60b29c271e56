package extract

import (
	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/document"
	"github.com/joseph-ayodele/pboc-bom/internal/entity"
)

func readPersonalInfo(body []document.Block) (entity.PersonalInfo, error) {
	var p entity.PersonalInfo
	var err error
	if p.Identity, err = readIdentity(SingleTableByFlag(body, "身份信息")); err != nil {
		return p, err
	}
	if p.Residence, err = readResidence(SingleTableByFlag(body, "居住信息")); err != nil {
		return p, err
	}
	if p.Spouse, err = readSpouse(SingleTableByFlag(body, "配偶信息")); err != nil {
		return p, err
	}
	if p.Professional, err = readProfessional(SingleTableByFlag(body, "职业信息")); err != nil {
		return p, err
	}
	return p, nil
}

// readIdentity expects the fixed 8x4 layout: titles, values, address
// titles, addresses.
func readIdentity(t *document.Table) (*entity.Identity, error) {
	if t == nil {
		return nil, nil
	}
	if t.Cols() != 8 || t.Len() != 4 {
		return nil, common.NewStructureError("identity", "want 8x4 table, got %dx%d", t.Cols(), t.Len())
	}
	return &entity.Identity{
		Gender:            t.At(1, 0),
		Birthday:          t.At(1, 1),
		MaritalState:      t.At(1, 2),
		Mobile:            t.At(1, 3),
		OfficeTelephoneNo: t.At(1, 4),
		HomeTelephoneNo:   t.At(1, 5),
		EduLevel:          t.At(1, 6),
		EduDegree:         t.At(1, 7),
		PostAddress:       t.At(3, 0),
		RegisteredAddress: t.At(3, 7),
	}, nil
}

func readResidence(t *document.Table) ([]entity.Residence, error) {
	if t == nil {
		return nil, nil
	}
	if t.Cols() != 4 {
		return nil, common.NewStructureError("residence", "want 4 columns, got %d", t.Cols())
	}
	addr, status, updated := 1, 2, 3
	for c, title := range t.Row(0) {
		switch title {
		case "居住地址":
			addr = c
		case "居住状况":
			status = c
		case "信息更新日期":
			updated = c
		}
	}
	out := make([]entity.Residence, 0, t.Len())
	for r := 1; r < t.Len(); r++ {
		out = append(out, entity.Residence{
			Address:       t.At(r, addr),
			ResidenceType: t.At(r, status),
			GetTime:       t.At(r, updated),
		})
	}
	return out, nil
}

func readSpouse(t *document.Table) (*entity.Spouse, error) {
	if t == nil {
		return nil, nil
	}
	if t.Cols() != 5 || t.Len() != 2 {
		return nil, common.NewStructureError("spouse", "want 5x2 table, got %dx%d", t.Cols(), t.Len())
	}
	return &entity.Spouse{
		Name:        t.At(1, 0),
		CertType:    t.At(1, 1),
		CertNo:      t.At(1, 2),
		Employer:    t.At(1, 3),
		TelephoneNo: t.At(1, 4),
	}, nil
}

// readProfessional reads the two stacked blocks of the occupation table:
// employer rows first, then occupation rows that fill the same records in
// order.
func readProfessional(t *document.Table) ([]entity.Professional, error) {
	out := []entity.Professional{}
	if t == nil {
		return out, nil
	}
	cls, counter := 0, 0
	for r := 0; r < t.Len(); r++ {
		switch {
		case t.HasCell(r, "工作单位"):
			cls = 1
			continue
		case t.HasCell(r, "职业"):
			cls = 2
			continue
		}
		switch cls {
		case 1:
			out = append(out, entity.Professional{Employer: t.At(r, 1), EmployerAddress: t.At(r, 6)})
		case 2:
			if counter >= len(out) {
				return nil, common.NewStructureError("professional", "occupation row %d has no employer row", counter+1)
			}
			p := &out[counter]
			p.Occupation = t.At(r, 1)
			p.Industry = t.At(r, 2)
			p.Duty = t.At(r, 3)
			p.Title = t.At(r, 4)
			p.StartYear = t.At(r, 5)
			p.GetTime = t.At(r, 6)
			counter++
		}
	}
	return out, nil
}
