package training

// DefaultCorpus is the seed corpus used when no corpus file is supplied.
// Labels are department internal names and must exist before training.
var DefaultCorpus = []Sample{
	{Text: "La canilla del baño del primer piso pierde agua todo el día", Label: "mantenimiento"},
	{Text: "Hay un vidrio roto en la ventana del aula 204", Label: "mantenimiento"},
	{Text: "El aire acondicionado del laboratorio no enfría", Label: "mantenimiento"},
	{Text: "La puerta del aula magna no cierra bien", Label: "mantenimiento"},
	{Text: "Se quemó un tubo de luz en el pasillo del segundo piso", Label: "mantenimiento"},
	{Text: "El ascensor del edificio central está fuera de servicio", Label: "mantenimiento"},
	{Text: "Hay una filtración de agua en el techo de la biblioteca", Label: "mantenimiento"},
	{Text: "El banco del aula 12 está roto y es peligroso", Label: "mantenimiento"},

	{Text: "No anda el wifi en el tercer piso desde ayer", Label: "sistemas"},
	{Text: "El proyector del aula 301 no enciende", Label: "sistemas"},
	{Text: "No puedo acceder al campus virtual con mi usuario", Label: "sistemas"},
	{Text: "Las computadoras del laboratorio de informática están lentas", Label: "sistemas"},
	{Text: "La impresora de la sala de profesores no imprime", Label: "sistemas"},
	{Text: "El sistema de inscripciones se cae cuando intento anotarme", Label: "sistemas"},
	{Text: "No llegan los correos institucionales a mi cuenta", Label: "sistemas"},

	{Text: "Los baños del subsuelo están sucios y sin papel", Label: "limpieza"},
	{Text: "Hay basura acumulada en el patio interno", Label: "limpieza"},
	{Text: "El aula 105 está sin limpiar desde hace una semana", Label: "limpieza"},
	{Text: "Se derramó líquido en la escalera y nadie lo limpió", Label: "limpieza"},
	{Text: "Los tachos de residuos del comedor están desbordados", Label: "limpieza"},

	{Text: "La puerta de emergencia del gimnasio está bloqueada", Label: "seguridad"},
	{Text: "No funciona la luz de emergencia del pasillo central", Label: "seguridad"},
	{Text: "Falta el matafuegos del laboratorio de química", Label: "seguridad"},
	{Text: "Se robaron una notebook del aula de posgrado", Label: "seguridad"},
	{Text: "El portón del estacionamiento quedó abierto toda la noche", Label: "seguridad"},
}
