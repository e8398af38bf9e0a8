package zenputsync

// CodigoCalificacionGeneral marks the form's own overall-score field when it
// shows up in the percentage scan; it is never a sub-score.
const CodigoCalificacionGeneral = "CALIFICACION_GENERAL"

type labelCode struct {
	Label  string
	Codigo string
}

// areaLabels maps the operational area titles (boilerplate stripped,
// uppercased) to catalog codes. Slice order is the fallback-match order.
var areaLabels = []labelCode{
	{"PROCESO MARINADO", "PROCESO_MARINADO"},
	{"CUARTO FRIO 1", "CUARTO_FRIO_1"},
	{"AREA COCINA FRIA/CALIENTE", "AREA_COCINA"},
	{"REFRIGERADORES DE SERVICIO", "REFRIGERADORES_SERVICIO"},
	{"CUARTO FRIO 2", "CUARTO_FRIO_2"},
	{"ALMACEN JARABES", "ALMACEN_JARABES"},
	{"ALMACEN GENERAL", "ALMACEN_GENERAL"},
	{"CONGELADOR PAPA", "CONGELADOR_PAPA"},
	{"MAQUINA DE HIELO", "MAQUINA_HIELO"},
	{"BAÑO EMPLEADOS", "BANO_EMPLEADOS"},
	{"LAVADO DE UTENSILIOS", "LAVADO_UTENSILIOS"},
	{"HORNOS", "HORNOS"},
	{"FREIDORA DE PAPA", "FREIDORA_PAPA"},
	{"CONSERVADOR PAPA FRITA", "CONSERVADOR_PAPA"},
	{"ASADORES", "ASADORES"},
	{"BARRA DE SERVICIO", "BARRA_SERVICIO"},
	{"COMEDOR AREA COMEDOR", "COMEDOR"},
	{"BAÑO CLIENTES", "BANO_CLIENTES"},
	{"DISPENSADOR DE REFRESCOS", "DISPENSADOR_REFRESCOS"},
	{"BARRA DE SALSAS", "BARRA_SALSAS"},
	{"TIEMPOS DE SERVICIO", "TIEMPOS_SERVICIO"},
	{"ALMACEN QUÍMICOS", "ALMACEN_QUIMICOS"},
	{"AVISO DE FUNCIONAMIENTO, BITACORAS, CARPETA DE FUMIGACION CONTROL", "DOCUMENTACION"},
	{"AREA MARINADO", "AREA_MARINADO"},
	{"CAJAS DE TOTOPO EMPACADO", "CAJAS_TOTOPO"},
	{"PLANCHA Y MESA DE TRABAJO PARA QUESADILLAS Y BURRITOS", "PLANCHA_MESA"},
	{"FREIDORAS", "FREIDORAS"},
	{"EXTERIOR SUCURSAL", "EXTERIOR"},
}

// kpiLabels maps the safety KPI titles to catalog codes. Safety-form
// labels are matched as compound substrings, see matchKpiCode.
var kpiLabels = []labelCode{
	{"COMEDOR", "COMEDOR"},
	{"ASADORES", "ASADORES"},
	{"AREA MARINADO", "AREA_MARINADO"},
	{"BODEGA", "BODEGA"},
	{"HORNOS", "HORNOS"},
	{"FREIDORAS", "FREIDORAS"},
	{"CENTRO DE CARGA", "CENTRO_CARGA"},
	{"AZOTEA", "AZOTEA"},
	{"EXTERIOR", "EXTERIOR"},
	{"PROGRAMA PROTECCION CIVIL", "PROTECCION_CIVIL"},
	{"BITACORAS", "BITACORAS"},
}
