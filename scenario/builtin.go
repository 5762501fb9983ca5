package scenario

import (
	"fmt"
	"io"

	"github.com/mgomes/handoff/pact"
)

// Courier accepts or declines deliveries. It is the Go face of the courier
// contract; the built-in conformers satisfy it statically, so for them a
// conformance failure cannot survive compilation.
type Courier interface {
	TakeDelivery() bool
	Callsign() string
}

// Routable carries a reassignable delivery zone.
type Routable interface {
	Zone() string
	SetZone(zone string)
}

var (
	_ Courier  = BikeCourier{}
	_ Courier  = (*Drone)(nil)
	_ Routable = (*Drone)(nil)
	_ Courier  = Pager{}
)

// courierOps pins the designated operation's Go signature. The courier
// contract derives its method requirement from this interface so the two
// cannot drift apart.
type courierOps interface {
	TakeDelivery() bool
}

// CourierContract is the built-in courier contract: the TakeDelivery
// operation plus a read-only Callsign property.
func CourierContract() pact.Contract {
	ops := pact.MustDescribe[courierOps]("courier", "")
	props := pact.MustNewContract("courier", "", nil, []pact.Property{
		{Name: "Callsign", Type: "string", Access: pact.ReadOnly},
	})
	return pact.MustCombine("courier", "accepts or declines deliveries", ops, props)
}

// RoutableContract is the built-in routable contract: a read-write Zone
// property and nothing else.
func RoutableContract() pact.Contract {
	return pact.MustNewContract("routable", "carries a reassignable delivery zone", nil, []pact.Property{
		{Name: "Zone", Type: "string", Access: pact.ReadWrite},
	})
}

// ZonedCourierContract is the conjunction of courier and routable. Only
// pointer conformers can satisfy it: the Zone setter needs a pointer
// receiver.
func ZonedCourierContract() pact.Contract {
	return pact.MustCombine("zoned-courier", "a courier that can be rerouted", CourierContract(), RoutableContract())
}

// BikeCourier is a value conformer: it satisfies courier with value
// receivers and carries no members beyond the contract surface.
type BikeCourier struct {
	out      io.Writer
	callsign string
}

// NewBikeCourier builds a bike courier whose side output goes to w.
func NewBikeCourier(w io.Writer) BikeCourier {
	if w == nil {
		w = io.Discard
	}
	return BikeCourier{out: w, callsign: "bike-7"}
}

// TakeDelivery always accepts.
func (b BikeCourier) TakeDelivery() bool {
	fmt.Fprintf(b.out, "%s rings the bell and pedals off\n", b.callsign)
	return true
}

// Callsign identifies the courier.
func (b BikeCourier) Callsign() string {
	return b.callsign
}

// Drone is a pointer conformer satisfying both courier and routable. Its
// Battery and Recharge members sit outside every contract: reachable
// through the concrete type, concealed behind a contract-typed reference.
type Drone struct {
	out      io.Writer
	callsign string
	zone     string
	battery  int
}

// NewDrone builds a fully charged drone whose side output goes to w.
func NewDrone(w io.Writer) *Drone {
	if w == nil {
		w = io.Discard
	}
	return &Drone{out: w, callsign: "drone-2", zone: "north", battery: 100}
}

// TakeDelivery accepts while the battery holds out; each flight costs 30%.
func (d *Drone) TakeDelivery() bool {
	if d.battery < 30 {
		fmt.Fprintf(d.out, "%s grounded, battery at %d%%\n", d.callsign, d.battery)
		return false
	}
	d.battery -= 30
	fmt.Fprintf(d.out, "%s lifts off toward %s\n", d.callsign, d.zone)
	return true
}

// Callsign identifies the drone.
func (d *Drone) Callsign() string {
	return d.callsign
}

// Zone reports the current delivery zone.
func (d *Drone) Zone() string {
	return d.zone
}

// SetZone reroutes the drone.
func (d *Drone) SetZone(zone string) {
	d.zone = zone
}

// Battery reports the remaining charge. Not part of any contract.
func (d *Drone) Battery() int {
	return d.battery
}

// Recharge restores a full charge. Not part of any contract.
func (d *Drone) Recharge() {
	d.battery = 100
}

// Pager conforms to courier but declines every delivery, which makes it the
// built-in way to exercise the host's declined branch.
type Pager struct {
	out io.Writer
}

// NewPager builds a pager whose side output goes to w.
func NewPager(w io.Writer) Pager {
	if w == nil {
		w = io.Discard
	}
	return Pager{out: w}
}

// TakeDelivery never accepts.
func (p Pager) TakeDelivery() bool {
	fmt.Fprintln(p.out, "pager-5 beeps into the void")
	return false
}

// Callsign identifies the pager.
func (p Pager) Callsign() string {
	return "pager-5"
}

// Builtin returns a catalog preloaded with the demonstration contracts and
// conformer kinds. Runners without an explicit catalog use it.
func Builtin() *pact.Catalog {
	cat := pact.NewCatalog()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(cat.RegisterContract(CourierContract()))
	must(cat.RegisterContract(RoutableContract()))
	must(cat.RegisterContract(ZonedCourierContract()))
	must(cat.RegisterConformer(pact.Provider{
		Kind: "bike",
		Doc:  "value conformer; always accepts",
		New:  func(w io.Writer) any { return NewBikeCourier(w) },
	}))
	must(cat.RegisterConformer(pact.Provider{
		Kind: "drone",
		Doc:  "pointer conformer; accepts until the battery runs down",
		New:  func(w io.Writer) any { return NewDrone(w) },
	}))
	must(cat.RegisterConformer(pact.Provider{
		Kind: "pager",
		Doc:  "value conformer; declines everything",
		New:  func(w io.Writer) any { return NewPager(w) },
	}))
	return cat
}

// Demo returns the canned demonstration scenario: one empty-slot trigger,
// then the bike courier is hired and triggered.
func Demo() *Scenario {
	return &Scenario{
		Meta: Meta{Name: "demo", Contract: "courier", Operation: "TakeDelivery"},
		Cast: []CastMember{
			{Name: "ada", Kind: "bike"},
			{Name: "zip", Kind: "drone"},
			{Name: "buzz", Kind: "pager"},
		},
		Steps: []Step{
			{Op: OpTrigger},
			{Op: OpAcquire, Member: "ada"},
			{Op: OpTrigger},
		},
	}
}
