package items

// ID holds item-id constants referenced by name throughout the domain
// analyzers, mirroring the upstream item dump's ids. Not generated
// from the JSON dump; the set below is the subset the analyzers
// actually reference.
const (
	IDVoidKnightTop     int32 = 8839
	IDVoidKnightRobe    int32 = 8840
	IDVoidKnightGloves  int32 = 8842
	IDVoidMageHelm      int32 = 11663
	IDVoidRangerHelm    int32 = 11664
	IDVoidMeleeHelm     int32 = 11665
	IDGoblinPaintCannon int32 = 12727
	IDDinhsBulwark      int32 = 21015
	IDHamJoint          int32 = 23360
	IDVoidKnightTopL    int32 = 24177
	IDEliteVoidTopL     int32 = 24178
	IDVoidKnightRobeL   int32 = 24179
	IDEliteVoidRobeL    int32 = 24180
	IDVoidKnightMaceL   int32 = 24181
	IDVoidKnightGlovesL int32 = 24182
	IDVoidMageHelmL     int32 = 24183
	IDVoidRangerHelmL   int32 = 24184
	IDVoidMeleeHelmL    int32 = 24185
	IDSwiftBlade        int32 = 24219
	IDZaryteVambraces   int32 = 26235
	IDVoidKnightTopOr   int32 = 26463
	IDVoidKnightRobeOr  int32 = 26465
	IDVoidKnightGlovesOr int32 = 26467
	IDEliteVoidTopOr    int32 = 26469
	IDEliteVoidRobeOr   int32 = 26471
	IDVoidMageHelmOr    int32 = 26473
	IDVoidRangerHelmOr  int32 = 26475
	IDVoidMeleeHelmOr   int32 = 26477
	IDMasoriMask        int32 = 27226
	IDMasoriBody        int32 = 27229
	IDMasoriChaps       int32 = 27232
	IDMasoriMaskF       int32 = 27235
	IDMasoriBodyF       int32 = 27238
	IDMasoriChapsF      int32 = 27241
	IDDinhsBlazingBulwark int32 = 28682
	IDDualMacuahuitl    int32 = 28997
)
