package rfconfig

import "testing"

func defaultFlags() *Flags {
	return &Flags{
		DatasetPath:         "data.csv",
		NumTrees:            10,
		MaxDepth:            10,
		MinSamplesSplit:     2,
		MaxFeatures:         "sqrt",
		TrainProportion:     0.8,
		TrainTreeProportion: 0.75,
		Seed:                0,
		ThreadCount:         1,
		NumProcesses:        1,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg, err := Validate(defaultFlags())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Forest.NumTrees != 10 {
		t.Error("expected num_trees to carry through to the forest config, got:", cfg.Forest.NumTrees)
	}
}

func TestValidateRejectsOutOfRangeTrainProportion(t *testing.T) {
	f := defaultFlags()
	f.TrainProportion = 1.0
	if _, err := Validate(f); err == nil {
		t.Error("expected an error for train_proportion == 1.0")
	}

	f.TrainProportion = 0
	if _, err := Validate(f); err == nil {
		t.Error("expected an error for train_proportion == 0")
	}
}

func TestValidateRejectsOutOfRangeTrainTreeProportion(t *testing.T) {
	f := defaultFlags()
	f.TrainTreeProportion = 0
	if _, err := Validate(f); err == nil {
		t.Error("expected an error for train_tree_proportion == 0")
	}

	f.TrainTreeProportion = 1.1
	if _, err := Validate(f); err == nil {
		t.Error("expected an error for train_tree_proportion > 1")
	}
}

func TestValidateRejectsInvalidMaxFeatures(t *testing.T) {
	f := defaultFlags()
	f.MaxFeatures = "bogus"
	if _, err := Validate(f); err == nil {
		t.Error("expected an error for an invalid max_features value")
	}
}

func TestValidateRejectsOutOfRangeCounts(t *testing.T) {
	cases := []func(*Flags){
		func(f *Flags) { f.NumTrees = 0 },
		func(f *Flags) { f.NumProcesses = 0 },
		func(f *Flags) { f.ThreadCount = 0 },
		func(f *Flags) { f.MinSamplesSplit = 1 },
	}
	for _, mutate := range cases {
		f := defaultFlags()
		mutate(f)
		if _, err := Validate(f); err == nil {
			t.Errorf("expected an error for flags %+v", f)
		}
	}
}

func TestParseMaxFeaturesFixedInteger(t *testing.T) {
	m, err := parseMaxFeatures("5")
	if err != nil {
		t.Fatal(err)
	}
	if m.Count(100) != 5 {
		t.Error("expected a fixed max_features of 5 to resolve to 5, got:", m.Count(100))
	}
}
