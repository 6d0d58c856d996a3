package layout

// Slot is a fixed named position in the dashboard grid.
type Slot string

// Item is a named dashboard widget assignable to a slot.
type Item string

// Placement binds one item to one slot. Serialized placements are the wire
// and storage format of an arrangement, so the field names are stable.
type Placement struct {
	Slot Slot `json:"slot"`
	Item Item `json:"item"`
}

// Arrangement is the complete slot to item mapping at a point in time,
// ordered by the catalog's slot order.
type Arrangement []Placement

// Catalog defines the fixed set of slots and items for a deployment together
// with the default one-to-one arrangement. Names are case sensitive and must
// match between catalog, stored arrangements, and the frontend markers.
type Catalog struct {
	defaults Arrangement
	slots    map[Slot]struct{}
	items    map[Item]struct{}
}

func NewCatalog(defaults Arrangement) *Catalog {
	c := &Catalog{
		defaults: defaults,
		slots:    make(map[Slot]struct{}, len(defaults)),
		items:    make(map[Item]struct{}, len(defaults)),
	}
	for _, p := range defaults {
		c.slots[p.Slot] = struct{}{}
		c.items[p.Item] = struct{}{}
	}
	return c
}

// DefaultCatalog returns the dashboard widget set. Each widget starts in the
// slot of the same name.
func DefaultCatalog() *Catalog {
	widgets := []string{
		"TotalRevenue",
		"NewCompanies",
		"UpcomingEvents",
		"RecentActivity",
		"SalesPipeline",
		"EventsCalendar",
	}
	defaults := make(Arrangement, 0, len(widgets))
	for _, w := range widgets {
		defaults = append(defaults, Placement{Slot: Slot(w), Item: Item(w)})
	}
	return NewCatalog(defaults)
}

// Default returns a copy of the default arrangement.
func (c *Catalog) Default() Arrangement {
	out := make(Arrangement, len(c.defaults))
	copy(out, c.defaults)
	return out
}

func (c *Catalog) HasSlot(s Slot) bool {
	_, ok := c.slots[s]
	return ok
}

func (c *Catalog) HasItem(i Item) bool {
	_, ok := c.items[i]
	return ok
}

// Apply replays the given placements on top of the default arrangement and
// returns the resulting mapping in catalog slot order.
//
// Each placement relocates its item into its slot by swapping it with the
// item currently there. Swapping keeps the mapping a bijection: no item is
// ever orphaned or duplicated, and replaying an arrangement that is already
// in effect changes nothing. Placements naming a slot or item outside the
// catalog are skipped; stored arrangements survive widget set changes that
// way.
func (c *Catalog) Apply(placements Arrangement) Arrangement {
	bySlot := make(map[Slot]Item, len(c.defaults))
	slotOf := make(map[Item]Slot, len(c.defaults))
	for _, p := range c.defaults {
		bySlot[p.Slot] = p.Item
		slotOf[p.Item] = p.Slot
	}

	for _, p := range placements {
		current, slotKnown := bySlot[p.Slot]
		from, itemKnown := slotOf[p.Item]
		if !slotKnown || !itemKnown {
			continue
		}
		if current == p.Item {
			continue
		}
		bySlot[p.Slot] = p.Item
		bySlot[from] = current
		slotOf[p.Item] = p.Slot
		slotOf[current] = from
	}

	out := make(Arrangement, 0, len(c.defaults))
	for _, d := range c.defaults {
		out = append(out, Placement{Slot: d.Slot, Item: bySlot[d.Slot]})
	}
	return out
}
