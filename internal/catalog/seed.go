package catalog

import "vintage-atelier/internal/domain"

// seedProducts is the compiled-in storefront catalog. The slice order is the
// canonical "default" display order.
var seedProducts = []domain.Product{
	{
		ID:            1,
		Name:          "Винтажное кресло Windsor",
		Price:         45000,
		OriginalPrice: 55000,
		Category:      "Кресла",
		Style:         "Английский",
		Material:      "Дуб",
		Size:          "Средний",
		Image:         "/img/a5e41cb3-6702-483d-aaf0-a74525f501f4.jpg",
		Description:   "Изысканное кресло в английском стиле с резными деталями",
	},
	{
		ID:          2,
		Name:        "Обеденный стол Барокко",
		Price:       95000,
		Category:    "Столы",
		Style:       "Барокко",
		Material:    "Махагон",
		Size:        "Большой",
		Image:       "/img/7e1fe342-e594-48cf-80f5-71532bf4176e.jpg",
		Description: "Роскошный обеденный стол с орнаментальными ножками",
	},
	{
		ID:          3,
		Name:        "Витрина Ампир",
		Price:       75000,
		Category:    "Шкафы",
		Style:       "Ампир",
		Material:    "Орех",
		Size:        "Средний",
		Image:       "/img/1a00855f-281f-4bf0-ac99-bd24c51b1e7e.jpg",
		Description: "Элегантная витрина со стеклянными дверцами и латунной фурнитурой",
	},
	{
		ID:          4,
		Name:        "Письменный стол Викторианский",
		Price:       65000,
		Category:    "Столы",
		Style:       "Викторианский",
		Material:    "Дуб",
		Size:        "Средний",
		Image:       "/img/a5e41cb3-6702-483d-aaf0-a74525f501f4.jpg",
		Description: "Изящный письменный стол с множеством ящиков",
	},
	{
		ID:          5,
		Name:        "Комод Людовик XVI",
		Price:       85000,
		Category:    "Комоды",
		Style:       "Людовик XVI",
		Material:    "Орех",
		Size:        "Средний",
		Image:       "/img/1a00855f-281f-4bf0-ac99-bd24c51b1e7e.jpg",
		Description: "Роскошный комод с бронзовой отделкой",
	},
	{
		ID:          6,
		Name:        "Кресло Шиппендейл",
		Price:       55000,
		Category:    "Кресла",
		Style:       "Шиппендейл",
		Material:    "Махагон",
		Size:        "Средний",
		Image:       "/img/7e1fe342-e594-48cf-80f5-71532bf4176e.jpg",
		Description: "Элегантное кресло с характерными изогнутыми линиями",
	},
}
