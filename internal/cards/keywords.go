package cards

// Keyword is a named keyword ability, spelled as printed in rules text.
type Keyword string

func (k Keyword) String() string { return string(k) }

const (
	Deathtouch       Keyword = "Deathtouch"
	Defender         Keyword = "Defender"
	DoubleStrike     Keyword = "Double strike"
	Enchant          Keyword = "Enchant"
	Equip            Keyword = "Equip"
	FirstStrike      Keyword = "First strike"
	Flash            Keyword = "Flash"
	Flying           Keyword = "Flying"
	Haste            Keyword = "Haste"
	Hexproof         Keyword = "Hexproof"
	Indestructible   Keyword = "Indestructible"
	Intimidate       Keyword = "Intimidate"
	Lifelink         Keyword = "Lifelink"
	Menace           Keyword = "Menace"
	Protection       Keyword = "Protection"
	Reach            Keyword = "Reach"
	Shroud           Keyword = "Shroud"
	Trample          Keyword = "Trample"
	Vigilance        Keyword = "Vigilance"
	Ward             Keyword = "Ward"
	Fear             Keyword = "Fear"
	Banding          Keyword = "Banding"
	Rampage          Keyword = "Rampage"
	CumulativeUpkeep Keyword = "Cumulative upkeep"
	Flanking         Keyword = "Flanking"
	Phasing          Keyword = "Phasing"
	Buyback          Keyword = "Buyback"
	Shadow           Keyword = "Shadow"
	Cycling          Keyword = "Cycling"
	Echo             Keyword = "Echo"
	Horsemanship     Keyword = "Horsemanship"
	Fading           Keyword = "Fading"
	Kicker           Keyword = "Kicker"
	Flashback        Keyword = "Flashback"
	Madness          Keyword = "Madness"
	Morph            Keyword = "Morph"
	Amplify          Keyword = "Amplify"
	Provoke          Keyword = "Provoke"
	Storm            Keyword = "Storm"
	Affinity         Keyword = "Affinity"
	Entwine          Keyword = "Entwine"
	Modular          Keyword = "Modular"
	Sunburst         Keyword = "Sunburst"
	Bushido          Keyword = "Bushido"
	Soulshift        Keyword = "Soulshift"
	Splice           Keyword = "Splice"
	Offering         Keyword = "Offering"
	Ninjutsu         Keyword = "Ninjutsu"
	Epic             Keyword = "Epic"
	Convoke          Keyword = "Convoke"
	Dredge           Keyword = "Dredge"
	Transmute        Keyword = "Transmute"
	Bloodthirst      Keyword = "Bloodthirst"
	Haunt            Keyword = "Haunt"
	Replicate        Keyword = "Replicate"
	Forecast         Keyword = "Forecast"
	Graft            Keyword = "Graft"
	Recover          Keyword = "Recover"
	Ripple           Keyword = "Ripple"
	SplitSecond      Keyword = "Split second"
	Suspend          Keyword = "Suspend"
	Vanishing        Keyword = "Vanishing"
	Absorb           Keyword = "Absorb"
	AuraSwap         Keyword = "Aura swap"
	Delve            Keyword = "Delve"
	Fortify          Keyword = "Fortify"
	Frenzy           Keyword = "Frenzy"
	Gravestorm       Keyword = "Gravestorm"
	Poisonous        Keyword = "Poisonous"
	Transfigure      Keyword = "Transfigure"
	Champion         Keyword = "Champion"
	Changeling       Keyword = "Changeling"
	Evoke            Keyword = "Evoke"
	Hideaway         Keyword = "Hideaway"
	Prowl            Keyword = "Prowl"
	Reinforce        Keyword = "Reinforce"
	Conspire         Keyword = "Conspire"
	Persist          Keyword = "Persist"
	Wither           Keyword = "Wither"
	Retrace          Keyword = "Retrace"
	Devour           Keyword = "Devour"
	Exalted          Keyword = "Exalted"
	Unearth          Keyword = "Unearth"
	Cascade          Keyword = "Cascade"
	Annihilator      Keyword = "Annihilator"
	LevelUp          Keyword = "Level up"
	Rebound          Keyword = "Rebound"
	TotemArmor       Keyword = "Totem armor"
	Infect           Keyword = "Infect"
	BattleCry        Keyword = "Battle cry"
	LivingWeapon     Keyword = "Living weapon"
	Undying          Keyword = "Undying"
	Miracle          Keyword = "Miracle"
	Soulbond         Keyword = "Soulbond"
	Overload         Keyword = "Overload"
	Scavenge         Keyword = "Scavenge"
	Unleash          Keyword = "Unleash"
	Cipher           Keyword = "Cipher"
	Evolve           Keyword = "Evolve"
	Extort           Keyword = "Extort"
	Fuse             Keyword = "Fuse"
	Bestow           Keyword = "Bestow"
	Tribute          Keyword = "Tribute"
	Dethrone         Keyword = "Dethrone"
	Outlast          Keyword = "Outlast"
	Prowess          Keyword = "Prowess"
	Dash             Keyword = "Dash"
	Exploit          Keyword = "Exploit"
	Renown           Keyword = "Renown"
	Awaken           Keyword = "Awaken"
	Devoid           Keyword = "Devoid"
	Ingest           Keyword = "Ingest"
	Myriad           Keyword = "Myriad"
	Surge            Keyword = "Surge"
	Skulk            Keyword = "Skulk"
	Emerge           Keyword = "Emerge"
	Escalate         Keyword = "Escalate"
	Melee            Keyword = "Melee"
	Crew             Keyword = "Crew"
	Fabricate        Keyword = "Fabricate"
	Partner          Keyword = "Partner"
	Undaunted        Keyword = "Undaunted"
	Improvise        Keyword = "Improvise"
	Aftermath        Keyword = "Aftermath"
	Embalm           Keyword = "Embalm"
	Eternalize       Keyword = "Eternalize"
	Afflict          Keyword = "Afflict"
	Ascend           Keyword = "Ascend"
	Assist           Keyword = "Assist"
	JumpStart        Keyword = "Jump-start"
	Mentor           Keyword = "Mentor"
	Afterlife        Keyword = "Afterlife"
	Riot             Keyword = "Riot"
	Spectacle        Keyword = "Spectacle"
	Escape           Keyword = "Escape"
	Companion        Keyword = "Companion"
	Mutate           Keyword = "Mutate"
	Encore           Keyword = "Encore"
	Boast            Keyword = "Boast"
	Foretell         Keyword = "Foretell"
	Demonstrate      Keyword = "Demonstrate"
	Daybound         Keyword = "Daybound"
	Nightbound       Keyword = "Nightbound"
	Disturb          Keyword = "Disturb"
	Decayed          Keyword = "Decayed"
	Cleave           Keyword = "Cleave"
	Training         Keyword = "Training"
	Compleated       Keyword = "Compleated"
	Reconfigure      Keyword = "Reconfigure"
	Blitz            Keyword = "Blitz"
	Casualty         Keyword = "Casualty"
	Enlist           Keyword = "Enlist"
	ReadAhead        Keyword = "Read ahead"
	Ravenous         Keyword = "Ravenous"
	Squad            Keyword = "Squad"
	Toxic            Keyword = "Toxic"
	Prototype        Keyword = "Prototype"
	Backup           Keyword = "Backup"
	Bargain          Keyword = "Bargain"
	Craft            Keyword = "Craft"
	Disguise         Keyword = "Disguise"
	Imprint          Keyword = "Imprint"
)

// AllKeywords is the closed keyword vocabulary in detection order.
var AllKeywords = []Keyword{
	Deathtouch, Defender, DoubleStrike, Enchant, Equip, FirstStrike, Flash, Flying, Haste, Hexproof,
	Indestructible, Intimidate, Lifelink, Menace, Protection, Reach, Shroud, Trample, Vigilance, Ward,
	Fear, Banding, Rampage, CumulativeUpkeep, Flanking, Phasing, Buyback, Shadow, Cycling, Echo,
	Horsemanship, Fading, Kicker, Flashback, Madness, Morph, Amplify, Provoke, Storm, Affinity,
	Entwine, Modular, Sunburst, Bushido, Soulshift, Splice, Offering, Ninjutsu, Epic, Convoke, Dredge,
	Transmute, Bloodthirst, Haunt, Replicate, Forecast, Graft, Recover, Ripple, SplitSecond, Suspend,
	Vanishing, Absorb, AuraSwap, Delve, Fortify, Frenzy, Gravestorm, Poisonous, Transfigure, Champion,
	Changeling, Evoke, Hideaway, Prowl, Reinforce, Conspire, Persist, Wither, Retrace, Devour, Exalted,
	Unearth, Cascade, Annihilator, LevelUp, Rebound, TotemArmor, Infect, BattleCry, LivingWeapon,
	Undying, Miracle, Soulbond, Overload, Scavenge, Unleash, Cipher, Evolve, Extort, Fuse, Bestow,
	Tribute, Dethrone, Outlast, Prowess, Dash, Exploit, Renown, Awaken, Devoid, Ingest, Myriad, Surge,
	Skulk, Emerge, Escalate, Melee, Crew, Fabricate, Partner, Undaunted, Improvise, Aftermath, Embalm,
	Eternalize, Afflict, Ascend, Assist, JumpStart, Mentor, Afterlife, Riot, Spectacle, Escape,
	Companion, Mutate, Encore, Boast, Foretell, Demonstrate, Daybound, Nightbound, Disturb, Decayed,
	Cleave, Training, Compleated, Reconfigure, Blitz, Casualty, Enlist, ReadAhead, Ravenous, Squad,
	Toxic, Prototype, Backup, Bargain, Craft, Disguise, Imprint,
}
