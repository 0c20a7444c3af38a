package rescale

import "strings"

// VersionEntry maps a human-readable solver version to its platform code.
type VersionEntry struct {
	Name string
	Code string
}

// Solver is a software package offered by the platform, with a fixed
// analysis code, a default license and a static version table.
// A Solver is immutable once built.
type Solver struct {
	code           string
	defaultLicense string
	versions       []VersionEntry
}

// NewSolver returns a Solver. versions is copied and should be ordered
// newest first.
func NewSolver(code, defaultLicense string, versions ...VersionEntry) *Solver {
	return &Solver{
		code:           code,
		defaultLicense: defaultLicense,
		versions:       append([]VersionEntry(nil), versions...),
	}
}

// Code returns the platform analysis code.
func (s *Solver) Code() string { return s.code }

// DefaultLicense returns the license used by [Solver.NewAnalysis].
func (s *Solver) DefaultLicense() string { return s.defaultLicense }

// VersionCode resolves a version name such as
// "2023 HF4 (FlexNet Licensing)" to its platform code.
// Unknown names fail with [ErrInvalidState]; the message lists every
// known name.
func (s *Solver) VersionCode(name string) (string, error) {
	for _, v := range s.versions {
		if v.Name == name {
			return v.Code, nil
		}
	}
	return "", invalidState("version %q not found for %s; available versions are: %s",
		name, s.code, strings.Join(s.VersionNames(), ", "))
}

// VersionNames returns the known version names, newest first.
func (s *Solver) VersionNames() []string {
	names := make([]string, len(s.versions))
	for i, v := range s.versions {
		names[i] = v.Name
	}
	return names
}

// NewAnalysis returns an Analysis of this solver at the named version,
// using the solver's default license.
func (s *Solver) NewAnalysis(versionName, command string, files ...*File) (*Analysis, error) {
	code, err := s.VersionCode(versionName)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		Code:       s.code,
		Version:    code,
		Command:    command,
		InputFiles: files,
		License:    s.defaultLicense,
	}, nil
}

// Abaqus is the Abaqus FEA solver.
var Abaqus = NewSolver("abaqus", "27101@SV10266",
	VersionEntry{"2024 HF4 (FlexNet Licensing)", "2024-hf4"},
	VersionEntry{"2023 HF9 (FlexNet Licensing)", "2023-hf9"},
	VersionEntry{"2023 HF4 (FlexNet Licensing)", "2023-hf4"},
	VersionEntry{"2023 HF2 (FlexNet Licensing)", "2023-HF2"},
	VersionEntry{"2023 HF1 (FlexNet Licensing)", "2023-HF1"},
	VersionEntry{"2023 Golden (FlexNet Licensing)", "2023-golden"},
	VersionEntry{"2022.HF9 (FlexNet Licensing)", "2022-2328"},
	VersionEntry{"2022.HF5 (FlexNet Licensing)", "2022-2241"},
	VersionEntry{"2022.HF4 (FlexNet Licensing)", "2022-2232"},
	VersionEntry{"2022.HF3 (FlexNet Licensing)", "2022-2223"},
	VersionEntry{"2022.HF1 (FlexNet Licensing)", "2022-2205"},
	VersionEntry{"2022 Golden (FlexNet Licensing)", "2022-golden"},
	VersionEntry{"2021.HF9 (FlexNet Licensing)", "2021-2140"},
	VersionEntry{"2021.HF6 (FlexNet Licensing)", "2021-2117"},
	VersionEntry{"2020.HF11 (FlexNet Licensing)", "2020-2136"},
	VersionEntry{"2020.HF6 (FlexNet Licensing)", "2020-2046"},
	VersionEntry{"2020.HF5 (FlexNet Licensing)", "2020-2038"},
	VersionEntry{"2020 Golden (FlexNet Licensing)", "2020"},
	VersionEntry{"2019.HF6 (FlexNet Licensing)", "2019-1947"},
	VersionEntry{"2019 (FlexNet Licensing)", "2019"},
	VersionEntry{"2018.HF10 (FlexNet Licensing)", "2018-1928"},
	VersionEntry{"2018 (FlexNet Licensing HF4)", "2018"},
	VersionEntry{"2017-efa-single-node", "2017-efa-single-node"},
	VersionEntry{"2017", "2017"},
	VersionEntry{"6.14-5", "6.14.5-pcmpi"},
	VersionEntry{"6.14-3", "6.14.3-pcmpi"},
	VersionEntry{"6.14-2", "6.14.2-pcmpi"},
	VersionEntry{"6.13-5", "6.13.5-ibm"},
	VersionEntry{"6.12-3", "6.12-3"},
)
