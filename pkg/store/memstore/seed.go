package memstore

import balcao "github.com/balcao-erp/balcao.go"

// Demo returns a store seeded with the sample dataset the web client ships
// for demonstrations. The grupos hierarchy is deliberately left
// unprovisioned so the degraded-mode paths stay visible in demo mode.
func Demo() *Store {
	s := New()

	s.Seed(balcao.CollectionFornecedores,
		balcao.Record{"nome": "Distribuidora Nacional", "cnpj": "12.345.678/0001-90", "contato": "Carlos Souza", "telefone": "(11) 3456-7890", "email": "vendas@distribuidoranacional.com", "tempo_medio_entrega": 3, "desempenho": 95, "categoria": "Alimentos"},
		balcao.Record{"nome": "Importadora Global", "cnpj": "98.765.432/0001-10", "contato": "Ana Lima", "telefone": "(21) 3456-7890", "email": "contato@importadoraglobal.com", "tempo_medio_entrega": 7, "desempenho": 85, "categoria": "Eletrônicos"},
		balcao.Record{"nome": "Fábrica Têxtil Aurora", "cnpj": "56.789.012/0001-34", "contato": "Roberto Pereira", "telefone": "(31) 3456-7890", "email": "comercial@textilaurora.com", "tempo_medio_entrega": 5, "desempenho": 90, "categoria": "Têxtil"},
		balcao.Record{"nome": "Plásticos & Embalagens Ltda", "cnpj": "34.567.890/0001-12", "contato": "Fernanda Santos", "telefone": "(41) 3456-7890", "email": "vendas@plasticosembalagens.com", "tempo_medio_entrega": 4, "desempenho": 92, "categoria": "Embalagens"},
		balcao.Record{"nome": "Suprimentos Industriais Tech", "cnpj": "23.456.789/0001-01", "contato": "Marcelo Costa", "telefone": "(51) 3456-7890", "email": "suporte@techindustrial.com", "tempo_medio_entrega": 10, "desempenho": 75, "categoria": "Industrial"},
	)

	s.Seed(balcao.CollectionClientes,
		balcao.Record{"nome": "Empresa ABC", "documento": "12.345.678/0001-90", "telefone": "(11) 3456-7890", "email": "contato@empresaabc.com", "cidade": "São Paulo"},
		balcao.Record{"nome": "João Silva", "documento": "123.456.789-00", "telefone": "(11) 98765-4321", "email": "joao.silva@email.com", "cidade": "Rio de Janeiro"},
		balcao.Record{"nome": "Comércio XYZ", "documento": "98.765.432/0001-10", "telefone": "(21) 3456-7890", "email": "vendas@xyz.com", "cidade": "Curitiba"},
		balcao.Record{"nome": "Maria Costa", "documento": "987.654.321-00", "telefone": "(31) 98765-4321", "email": "maria.costa@email.com", "cidade": "Belo Horizonte"},
		balcao.Record{"nome": "Distribuidora FastSell", "documento": "45.678.901/0001-23", "telefone": "(51) 3456-7890", "email": "comercial@fastsell.com", "cidade": "Porto Alegre"},
	)

	s.Seed(balcao.CollectionVendas,
		balcao.Record{"codigo": "OV-2025-0001", "cliente": "Empresa ABC", "status": "Em aberto", "valor": 2459.90, "itens": 7},
		balcao.Record{"codigo": "OV-2025-0002", "cliente": "João Silva", "status": "Pago", "valor": 1350.50, "itens": 3},
		balcao.Record{"codigo": "OV-2025-0003", "cliente": "Comércio XYZ", "status": "Entregue", "valor": 4780.00, "itens": 12},
		balcao.Record{"codigo": "OV-2025-0004", "cliente": "Maria Costa", "status": "Cancelado", "valor": 980.75, "itens": 2},
		balcao.Record{"codigo": "OV-2025-0005", "cliente": "Distribuidora FastSell", "status": "Pago", "valor": 8920.00, "itens": 15},
	)

	s.Seed(balcao.CollectionCompras,
		balcao.Record{"codigo": "OC-2025-0001", "fornecedor": "Distribuidora Nacional", "status": "Em aberto", "valor": 12580.90, "previsao_entrega": "2025-05-19"},
		balcao.Record{"codigo": "OC-2025-0002", "fornecedor": "Importadora Global", "status": "Em aberto", "valor": 7450.50, "previsao_entrega": "2025-05-24"},
		balcao.Record{"codigo": "OC-2025-0003", "fornecedor": "Fábrica Têxtil Aurora", "status": "Recebido", "valor": 5230.00, "previsao_entrega": "2025-05-15"},
		balcao.Record{"codigo": "OC-2025-0004", "fornecedor": "Plásticos & Embalagens Ltda", "status": "Recebido", "valor": 3180.75, "previsao_entrega": "2025-05-09"},
		balcao.Record{"codigo": "OC-2025-0005", "fornecedor": "Suprimentos Industriais Tech", "status": "Cancelado", "valor": 9870.00, "previsao_entrega": "2025-05-15"},
	)

	s.Provision(balcao.CollectionProdutos)
	s.Provision(balcao.AuditCollection)

	return s
}
