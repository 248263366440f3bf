package catalog

func init() {
	c = &catalog{
		areas: []string{AreaSociales, AreaCiencias, AreaIngles, AreaLenguaje, AreaMatematicas},
		subtemas: map[string][]string{
			AreaSociales: {
				"Constitución de 1991 y organización del Estado",
				"Historia de Colombia - Frente Nacional",
				"Guerras Mundiales y Guerra Fría",
				"Geografía de Colombia (mapas, territorio y ambiente)",
			},
			AreaCiencias: {
				"Indagación científica (variables, control e interpretación de datos)",
				"Fuerzas, movimiento y energía",
				"Materia y cambios (mezclas, reacciones y conservación)",
				"Genética y herencia",
				"Ecosistemas y cambio climático (CTS)",
			},
			AreaIngles: {
				"Verb to be (am, is, are)",
				"Present Simple (afirmación, negación y preguntas)",
				"Past Simple (verbos regulares e irregulares)",
				"Comparatives and superlatives",
				"Subject/Object pronouns & Possessive adjectives",
			},
			AreaLenguaje: {
				"Comprensión lectora (sentido global y local)",
				"Conectores lógicos (causa, contraste, condición, secuencia)",
				"Identificación de argumentos y contraargumentos",
				"Idea principal y propósito comunicativo",
				"Hecho vs. opinión e inferencias",
			},
			AreaMatematicas: {
				"Operaciones con números enteros",
				"Razones y proporciones",
				"Regla de tres simple y compuesta",
				"Porcentajes y tasas (aumento, descuento, interés simple)",
				"Ecuaciones lineales y sistemas 2×2",
			},
		},
		guidance: map[string]map[string]string{
			AreaMatematicas: {
				"Operaciones con números enteros":                          "Crea un mini-caso con saldo/temperatura en 2–3 eventos y varias operaciones encadenadas (evita signos + en positivos).",
				"Razones y proporciones":                                   "Plantea mezcla/receta con proporción fija; incluye dos datos y pide el tercero (sin + en positivos).",
				"Regla de tres simple y compuesta":                         "Caso de obreros/tiempos o máquinas/producción; explícita si es directa o inversa (sin + en positivos).",
				"Porcentajes y tasas (aumento, descuento, interés simple)": "Precio inicial, descuento y un ajuste adicional (impuesto o recargo) para el total (sin + en positivos).",
				"Ecuaciones lineales y sistemas 2×2":                       "Dos ecuaciones con contexto y solución única; opciones como pares ordenados.",
			},
			AreaLenguaje: {
				"Comprensión lectora (sentido global y local)":                "Fragmento de 3–4 frases con datos y opiniones; pide sentido global sin confundir detalles.",
				"Conectores lógicos (causa, contraste, condición, secuencia)": "Incluye conectores variados; pregunta por el que mantiene la relación lógica.",
				"Identificación de argumentos y contraargumentos":             "Incluye tesis, razones y contraargumento explícito; pide reconocerlos.",
				"Idea principal y propósito comunicativo":                     "Señala pistas de intención (informar/persuadir) y cierre; pide la síntesis central.",
				"Hecho vs. opinión e inferencias":                             "Combina datos verificables y juicios de valor; pide distinguir e inferir con evidencia.",
			},
			AreaSociales: {
				"Constitución de 1991 y organización del Estado":       "Menciona funciones/órganos y derechos; pide finalidad/alcance.",
				"Historia de Colombia - Frente Nacional":               "Contexto histórico (años, actores, objetivos) sin anacronismos; interpreta consecuencias.",
				"Guerras Mundiales y Guerra Fría":                      "Tensiones ideológicas y efectos geopolíticos; pregunta por el rasgo central.",
				"Geografía de Colombia (mapas, territorio y ambiente)": "Relieve/clima vs. asentamientos/actividades; elegir síntesis coherente.",
			},
			AreaCiencias: {
				"Indagación científica (variables, control e interpretación de datos)": "Diseño experimental con VI/VD y dos controles; identificar correctamente.",
				"Fuerzas, movimiento y energía":                                        "Caso con masa, fuerza y variación de velocidad; relacionar con la 2ª ley de Newton.",
				"Materia y cambios (mezclas, reacciones y conservación)":               "Mezcla homogénea con separación por método físico; conservación de masa.",
				"Genética y herencia":                                                  "Cruce monohíbrido con dominancia completa; proporciones en F2.",
				"Ecosistemas y cambio climático (CTS)":                                 "Cambio de uso del suelo y biodiversidad; conclusión basada en evidencia.",
			},
			AreaIngles: {
				"Verb to be (am, is, are)":                          "Mini-diálogo con pistas de número/persona; forma correcta.",
				"Present Simple (afirmación, negación y preguntas)": "Rutinas diarias; terceras personas; -s y do/does.",
				"Past Simple (verbos regulares e irregulares)":      "Adverbios de pasado; forma correcta irregular.",
				"Comparatives and superlatives":                     "Comparación de objetos concretos; cuidado con 'more/—er'.",
				"Subject/Object pronouns & Possessive adjectives":   "Ambigüedad sujeto/objeto/posesivo; elige forma adecuada.",
			},
		},
		styles: []string{"Convergente", "Asimilador", "Acomodador", "Divergente"},
		styleDoc: map[string]string{
			"Convergente": "Aplicación práctica y solución única, con datos explícitos y pasos claros.",
			"Asimilador":  "Énfasis en conceptos, organización lógica y relaciones; más estructura conceptual.",
			"Acomodador":  "Contexto experiencial y toma de decisiones; casos situados y realistas.",
			"Divergente":  "Múltiples perspectivas y síntesis; escenario rico en matices pero con respuesta única.",
		},
		traits: map[string]string{
			"Divergente": "Enfócate en situaciones problema que requieran pensamiento creativo, " +
				"análisis desde múltiples perspectivas y reflexión. Usa contextos cotidianos " +
				"y preguntas abiertas que inviten a imaginar soluciones.",
			"Asimilador": "Prioriza la comprensión de teorías, modelos conceptuales y relaciones lógicas " +
				"entre ideas. Incluye definiciones claras, explicaciones sistemáticas y preguntas " +
				"que requieran razonamiento abstracto.",
			"Convergente": "Presenta problemas con una solución práctica y concreta. Enfócate en aplicación " +
				"directa de conocimientos, resolución eficiente de problemas y preguntas con " +
				"respuesta única y definida.",
			"Acomodador": "Usa escenarios reales, experimentación práctica y situaciones que requieran tomar " +
				"decisiones rápidas. Incluye contextos dinámicos donde se aprende haciendo y " +
				"ajustando sobre la marcha.",
		},
	}
}
