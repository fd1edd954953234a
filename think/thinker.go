package think

// Thinker is anything ticked once per 35 Hz game tick. Light thinkers have
// no other operations; map objects additionally support Kill, Explode and
// Respawn (see MapObject), driven host-wide by the engine's one-shot debug
// keys rather than by game combat, which is out of scope.
type Thinker interface {
	Tick()
}

// Sector special types that spawn a light thinker, from p_spec.c.
const (
	SectorLightFlash           int16 = 1
	SectorStrobeFast           int16 = 2
	SectorStrobeSlow           int16 = 3
	SectorStrobeFastDeathSlime int16 = 4
	SectorGlow                 int16 = 8
	SectorStrobeSlowSync       int16 = 12
	SectorStrobeFastSync       int16 = 13
	SectorFireFlicker          int16 = 17
)
