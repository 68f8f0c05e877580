package catalog

// Parameter is one monitored indicator: a display name, the dataset
// column it reads, optional lower/upper bounds, and its semantic group.
// A parameter with neither bound set can never raise an anomaly.
type Parameter struct {
	Name   string   `yaml:"name"`
	Column string   `yaml:"column"`
	Min    *float64 `yaml:"min"`
	Max    *float64 `yaml:"max"`
	Group  string   `yaml:"group"`
}

const (
	GroupOperational    = "Datos operativos / físicos de la muestra"
	GroupOilCondition   = "Condición del aceite"
	GroupWearMetals     = "Elementos de desgaste (wear metals)"
	GroupContamination  = "Contaminación (o elementos/propiedades contaminantes)"
	GroupAdditives      = "Elementos aditivos"
)

// Column keys of the sample dataset.
const (
	ColEquipment = "Equipo"
	ColDate      = "Fecha"
	ColHourMeter = "Horometro"
)

// Default returns the built-in catalog for diesel engine oil analysis.
// Bounds come from the laboratory reference limits the fleet is
// monitored against.
func Default() []Parameter {
	return []Parameter{
		{Name: "CIL1", Column: "CIL1", Min: f(16), Max: f(35), Group: GroupOperational},
		{Name: "CIL2", Column: "CIL2", Min: f(16), Max: f(35), Group: GroupOperational},
		{Name: "CIL3", Column: "CIL3", Min: f(16), Max: f(35), Group: GroupOperational},
		{Name: "CIL4", Column: "CIL4", Min: f(16), Max: f(35), Group: GroupOperational},
		{Name: "Presión Carter", Column: "Blow by Carter", Max: f(30), Group: GroupOperational},
		{Name: "▲ Temperatura Radiador", Column: "▲ Temp Radiador", Min: f(7), Group: GroupOperational},
		{Name: "Viscosidad", Column: "Viscosidad", Min: f(13), Max: f(17), Group: GroupOilCondition},
		{Name: "Fe (Hierro)", Column: "Fe", Max: f(70), Group: GroupWearMetals},
		{Name: "Cr (Cromo)", Column: "Cr", Max: f(10), Group: GroupWearMetals},
		{Name: "Pb (Plomo)", Column: "Pb", Max: f(20), Group: GroupWearMetals},
		{Name: "Cu (Cobre)", Column: "Cu", Max: f(25), Group: GroupWearMetals},
		{Name: "Sn (Estaño)", Column: "Sn", Max: f(10), Group: GroupWearMetals},
		{Name: "Al (Aluminio)", Column: "Al", Max: f(10), Group: GroupWearMetals},
		{Name: "Ni (Níquel)", Column: "Ni", Max: f(5), Group: GroupWearMetals},
		{Name: "Ag (Plata)", Column: "Ag", Max: f(2), Group: GroupWearMetals},
		{Name: "Silicio", Column: "Silicio", Max: f(15), Group: GroupContamination},
		{Name: "B (Boro)", Column: "B", Max: f(50), Group: GroupContamination},
		{Name: "Na (Sodio)", Column: "Na", Max: f(30), Group: GroupContamination},
		{Name: "Mg (Magnesio)", Column: "Mg", Min: f(10), Group: GroupAdditives},
		{Name: "Ca (Calcio)", Column: "Ca", Min: f(2200), Group: GroupAdditives},
		{Name: "Ba (Bario)", Column: "Ba", Max: f(2), Group: GroupAdditives},
		{Name: "P (Fósforo)", Column: "P", Min: f(800), Group: GroupAdditives},
		{Name: "Zn (Zinc)", Column: "Zn", Min: f(700), Group: GroupAdditives},
		{Name: "Mo (Molibdeno)", Column: "Mo", Max: f(100), Group: GroupAdditives},
		{Name: "Ti (Titanio)", Column: "Ti", Max: f(2), Group: GroupWearMetals},
		{Name: "V (Vanadio)", Column: "V", Max: f(1), Group: GroupWearMetals},
		{Name: "Mn (Manganeso)", Column: "Mn", Max: f(5), Group: GroupWearMetals},
		{Name: "Cd (Cadmio)", Column: "Cd", Max: f(1), Group: GroupWearMetals},
		{Name: "K (Potasio)", Column: "K", Max: f(5), Group: GroupContamination},
		{Name: "Diesel (%)", Column: "Diesel", Max: f(3), Group: GroupContamination},
		{Name: "Agua (%)", Column: "Agua", Max: f(0.2), Group: GroupContamination},
		{Name: "Oxidación", Column: "Oxidación", Max: f(20), Group: GroupOilCondition},
		{Name: "Sulfatación", Column: "Sulfatación", Max: f(20), Group: GroupOilCondition},
		{Name: "Nitración", Column: "Nitracion", Max: f(20), Group: GroupOilCondition},
		{Name: "Hollín (%)", Column: "Hollin", Max: f(1.8), Group: GroupOilCondition},
		{Name: "TBN", Column: "TBN", Min: f(5), Group: GroupOilCondition},
		{Name: "PQ", Column: "PQ", Max: f(50), Group: GroupOilCondition},
	}
}

// Groups returns the group labels in first-appearance order. Summary
// views render anomalies grouped in this order.
func Groups(params []Parameter) []string {
	seen := map[string]struct{}{}
	groups := []string{}
	for _, param := range params {
		if _, ok := seen[param.Group]; ok {
			continue
		}
		seen[param.Group] = struct{}{}
		groups = append(groups, param.Group)
	}
	return groups
}

// Columns returns the source column of every parameter, in catalog order.
func Columns(params []Parameter) []string {
	cols := make([]string, 0, len(params))
	for _, param := range params {
		cols = append(cols, param.Column)
	}
	return cols
}

func f(v float64) *float64 {
	return &v
}
